package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/battleship/internal/dependencies/clock"
	"github.com/mcoot/battleship/internal/dependencies/idgen"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/storage"
)

// MaxNameLength bounds display names and usernames
const MaxNameLength = 32

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidName        = errors.New("name must be 1 to 32 characters")
)

// Session is an issued token and the identity it carries
type Session struct {
	Token     string
	User      model.User
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Secret:     []byte("dev_secret_change_me"),
		TokenTTL:   24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// Service issues and verifies signed identity tokens
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     idgen.Generator
	cfg     Config
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, ids idgen.Generator, cfg Config) *Service {
	defaults := DefaultConfig()
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	if len(cfg.Secret) == 0 {
		cfg.Secret = defaults.Secret
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		cfg:     cfg,
	}
}

// CreateGuest issues a token for a new anonymous user
func (s *Service) CreateGuest(ctx context.Context, name string) (*Session, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:    model.UserID(s.ids.NewID()),
		Name:  name,
		Guest: true,
	}
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(*user)
}

// Register creates an account with a password and issues a token
func (s *Service) Register(ctx context.Context, username, password, name string) (*Session, error) {
	username, err := normalizeName(username)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = username
	}
	name, err = normalizeName(name)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrInvalidCredentials
	}

	// Check if username exists
	_, err = s.storage.GetAccountByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:   model.UserID(s.ids.NewID()),
		Name: name,
	}
	account := &model.Account{
		UserID:       user.ID,
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.issue(*user)
}

// Login checks a username and password and issues a token
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	account, err := s.storage.GetAccountByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUser(ctx, account.UserID)
	if err != nil {
		return nil, err
	}

	return s.issue(*user)
}

// Authenticate verifies a token and returns the user it identifies
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, ErrInvalidToken
	}

	// Ensure user still exists
	user, err := s.storage.GetUser(ctx, model.UserID(id))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// issue signs a token for user
func (s *Service) issue(user model.User) (*Session, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   string(user.ID),
		"name": user.Name,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	})
	signed, err := t.SignedString(s.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{
		Token:     signed,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// normalizeName trims name and checks its length
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}
