package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "user-1", Name: "Alice", Guest: true}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(*user, *retrieved)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestSavedUserIsCopied() {
	user := &model.User{ID: "user-1", Name: "Alice"}
	_ = s.storage.SaveUser(s.ctx, user)
	user.Name = "Mallory"

	retrieved, _ := s.storage.GetUser(s.ctx, "user-1")
	s.Equal("Alice", retrieved.Name)
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccountByUsername() {
	account := &model.Account{UserID: "user-1", Username: "alice", PasswordHash: "hash"}

	err := s.storage.SaveAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(*account, *retrieved)
}

func (s *StorageSuite) TestGetAccountByUsernameNotFound() {
	_, err := s.storage.GetAccountByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}
