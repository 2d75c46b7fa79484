package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/dharsanguruparan/notevault/internal/model"
)

// MemoryCredentials implements Credentials for tests and local runs.
type MemoryCredentials struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// NewMemoryCredentials constructs an empty store.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{users: make(map[string]*model.User)}
}

func (m *MemoryCredentials) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return fmt.Errorf("user %s: %w", u.Username, model.ErrUserExists)
	}
	cp := *u
	m.users[u.Username] = &cp
	return nil
}

func (m *MemoryCredentials) Get(_ context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, model.ErrUnknownUser)
	}
	cp := *u
	return &cp, nil
}
