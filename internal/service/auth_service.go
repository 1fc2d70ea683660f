package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nosql-mis/internal/auth"
	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/persistence"
	"github.com/spec-kit/nosql-mis/internal/repository"
	"github.com/spec-kit/nosql-mis/pkg/util/errorutil"
)

// ErrInvalidCredentials is returned for an unknown user or wrong password.
var ErrInvalidCredentials = errorutil.NewUnauthorized("Invalid credentials")

// AuthService coordinates login and logout.
type AuthService struct {
	users    repository.UserRepository
	sessions auth.SessionStore
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, sessions auth.SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !auth.VerifyPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

// Logout closes the session. Unknown sessions and a disabled session store are ignored.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	err := s.sessions.Delete(ctx, sessionID)
	if errors.Is(err, persistence.ErrRedisDisabled) {
		return nil
	}
	return err
}
