// Package auth is the credential store: registration and password
// verification. It issues no tokens; the note layer trusts usernames as
// given.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dharsanguruparan/notevault/internal/model"
)

// Credentials persists user records.
type Credentials interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, username string) (*model.User, error)
}

// Service hashes and verifies passwords over a Credentials store.
type Service struct {
	creds Credentials
}

// NewService constructs a Service.
func NewService(creds Credentials) *Service {
	return &Service{creds: creds}
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("username and password required: %w", model.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.creds.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
}

// Login verifies a password against the stored hash.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.creds.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, model.ErrBadCredentials
	}
	return u, nil
}
