package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/eleven-am/taskboard/internal/logger"
	"github.com/eleven-am/taskboard/internal/models"
	"github.com/eleven-am/taskboard/internal/store"
)

var (
	// ErrDuplicateEmail is returned when registering with an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUnknownEmail is returned when logging in with an email that has
	// no account; the caller should be directed to register.
	ErrUnknownEmail = errors.New("email not registered")

	// ErrInvalidCredential is returned when the password check fails.
	ErrInvalidCredential = errors.New("invalid credentials")
)

// Service handles registration, login and session identity resolution.
type Service struct {
	store *store.Store
}

// NewService creates an auth service over the given store
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Register hashes the password and persists a new user. A duplicate email
// surfaces as ErrDuplicateEmail without touching the existing account.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.store.Users.Create(ctx, user); err != nil {
		if store.IsDuplicate(err) {
			logger.Auth().Warn("duplicate registration", "email", email, "constraint", store.GetConstraintName(err))
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	logger.Auth().Info("registered user", "email", email)
	return user, nil
}

// Login verifies credentials and returns the matching user
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.Users.ByEmail(ctx, email)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, password) {
		logger.Auth().Warn("failed login attempt", "email", email)
		return nil, ErrInvalidCredential
	}

	return user, nil
}

// UserByID resolves a session-stored user ID back to a user. A missing
// row means the session is stale.
func (s *Service) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.store.Users.ByID(ctx, id)
}
