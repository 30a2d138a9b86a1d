package response

import (
	"time"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/auth"
)

// User represents a user in API responses
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Guest bool   `json:"guest"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:    string(u.ID),
		Name:  u.Name,
		Guest: u.Guest,
	}
}

// AuthResponse is the response for token issuing endpoints
type AuthResponse struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Token:     s.Token,
		User:      UserFromModel(&s.User),
		ExpiresAt: s.ExpiresAt,
	}
}

// Health is the response of the health endpoint
type Health struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
	Conns  int    `json:"connections"`
}
