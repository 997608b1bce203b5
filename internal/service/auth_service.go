package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-service/internal/auth"
	"github.com/spec-kit/lead-service/internal/config"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/repository"
	"github.com/spec-kit/lead-service/pkg/util"
)

// AuthService validates staff credentials. Login is a boolean gate: no
// token, cookie, or session state is issued.
type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{users: users, bcryptCost: cfg.BcryptCost}
}

// Login checks a username/password pair and returns the matched user id.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", util.NewValidationError("Username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", util.NewUnauthorized("Invalid user")
		}
		return "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", util.NewUnauthorized("Invalid password")
	}

	return user.ID, nil
}

// SeedUser creates a staff account at startup when it does not already
// exist. Idempotent, so restarting with the same credentials is safe.
func (s *AuthService) SeedUser(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, util.NewValidationError("seed username and password are required")
	}

	if existing, err := s.users.GetByUsername(ctx, username); err == nil {
		return existing, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
