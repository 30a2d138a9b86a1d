package idgen

import "github.com/google/uuid"

// Generator produces globally unique identifiers
type Generator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDv4 strings
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new UUIDv4 in canonical textual form
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
