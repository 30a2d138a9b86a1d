package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/battleship/internal/dependencies/idgen"
)

// MockIDGenerator returns queued ids, then deterministic UUID-shaped fallbacks
type MockIDGenerator struct {
	mu    sync.Mutex
	ids   []string
	index int
	count int
}

// Ensure MockIDGenerator implements Generator
var _ idgen.Generator = (*MockIDGenerator)(nil)

// NewMockIDGenerator creates a MockIDGenerator
func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

// NewID returns the next queued id, or a sequential 36-character id
func (g *MockIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.index < len(g.ids) {
		id := g.ids[g.index]
		g.index++
		return id
	}
	g.count++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", g.count)
}

// QueueID adds ids to the queue
func (g *MockIDGenerator) QueueID(ids ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ids = append(g.ids, ids...)
}
