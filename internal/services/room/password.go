package room

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for room passwords
var PasswordCost = bcrypt.DefaultCost

// Password is a hashed room secret; the zero value is an open room
type Password struct {
	hash []byte
}

// HashPassword hashes a room secret of any length
// An empty secret yields an open room
func HashPassword(plain string) (Password, error) {
	if plain == "" {
		return Password{}, nil
	}
	hash, err := bcrypt.GenerateFromPassword(digest(plain), PasswordCost)
	if err != nil {
		return Password{}, fmt.Errorf("failed to hash room password: %w", err)
	}
	return Password{hash: hash}, nil
}

// Open reports whether the room needs no password
func (p Password) Open() bool {
	return p.hash == nil
}

// Matches reports whether plain is the room secret
func (p Password) Matches(plain string) bool {
	if p.hash == nil {
		return plain == ""
	}
	return bcrypt.CompareHashAndPassword(p.hash, digest(plain)) == nil
}

// digest keeps bcrypt input under its 72 byte limit
func digest(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
