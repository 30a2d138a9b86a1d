package storage

import (
	"context"

	"github.com/mcoot/battleship/internal/model"
)

// Storage defines the interface for user persistence
// Rooms and games are process-local and never stored
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
}
