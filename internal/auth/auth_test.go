package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/notevault/internal/model"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryCredentials())

	require.NoError(t, svc.Register(ctx, "alice", "alice@example.com", "hunter2"))

	user, err := svc.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter2", user.PasswordHash, "password is stored hashed")
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryCredentials())

	require.NoError(t, svc.Register(ctx, "alice", "a@example.com", "pw"))
	err := svc.Register(ctx, "alice", "other@example.com", "pw2")
	assert.ErrorIs(t, err, model.ErrUserExists)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryCredentials())

	assert.ErrorIs(t, svc.Register(ctx, "", "a@example.com", "pw"), model.ErrInvalidInput)
	assert.ErrorIs(t, svc.Register(ctx, "alice", "a@example.com", ""), model.ErrInvalidInput)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryCredentials())
	require.NoError(t, svc.Register(ctx, "alice", "a@example.com", "hunter2"))

	_, err := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, model.ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody", "hunter2")
	assert.ErrorIs(t, err, model.ErrUnknownUser)
}
