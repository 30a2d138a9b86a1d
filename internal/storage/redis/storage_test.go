package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestUserTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "user-1", Name: "Alice"}

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

func (s *StorageSuite) TestGuestUserHasTTL() {
	user := &model.User{ID: "guest-1", Name: "Guest", Guest: true}
	_ = s.storage.SaveUser(s.ctx, user)

	ttl := s.mini.TTL(userKey("guest-1"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestRegisteredUserHasNoTTL() {
	user := &model.User{ID: "user-1", Name: "Alice"}
	_ = s.storage.SaveUser(s.ctx, user)

	ttl := s.mini.TTL(userKey("user-1"))
	s.Equal(time.Duration(0), ttl)
}

func (s *StorageSuite) TestGuestUserExpires() {
	user := &model.User{ID: "guest-1", Name: "Guest", Guest: true}
	_ = s.storage.SaveUser(s.ctx, user)

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetUser(s.ctx, "guest-1")
	s.ErrorIs(err, model.ErrUserNotFound)
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

func (s *StorageSuite) TestSaveAccountWritesIndex() {
	account := &model.Account{UserID: "user-1", Username: "alice", PasswordHash: "hash"}
	_ = s.storage.SaveAccount(s.ctx, account)

	id, err := s.mini.Get(usernameIndexKey("alice"))
	s.Require().NoError(err)
	s.Equal("user-1", id)
}

func (s *StorageSuite) TestGetAccountByUsernameNotFound() {
	_, err := s.storage.GetAccountByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetAccountWithDanglingIndex() {
	s.Require().NoError(s.mini.Set(usernameIndexKey("ghost"), "user-9"))

	_, err := s.storage.GetAccountByUsername(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrUserNotFound)
}
