package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-portal/internal/config"
	"github.com/jonathan/careers-portal/internal/db"
)

type memAdmins struct {
	byID map[uuid.UUID]*db.AdminUser
	err  error
}

func (m *memAdmins) GetAdminUserByEmail(_ context.Context, email string) (*db.AdminUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memAdmins) GetAdminUser(_ context.Context, id uuid.UUID) (*db.AdminUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byID[id], nil
}

func newTestLocal(t *testing.T) (*Local, *memAdmins, *db.AdminUser) {
	t.Helper()
	passwords := &config.PasswordConfig{BcryptCost: 10}
	hash, err := passwords.HashPassword("correct horse")
	require.NoError(t, err)

	admin := &db.AdminUser{ID: uuid.New(), Email: "admin@example.com", PasswordHash: hash}
	store := &memAdmins{byID: map[uuid.UUID]*db.AdminUser{admin.ID: admin}}
	return NewLocal(store, passwords, newTestTokenService()), store, admin
}

func TestLocal_SignIn(t *testing.T) {
	p, _, admin := newTestLocal(t)

	sess, err := p.SignIn(context.Background(), "admin@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.NotEqual(t, sess.AccessToken, sess.RefreshToken)
	assert.Equal(t, 4*3600, sess.ExpiresIn)
	assert.Equal(t, User{ID: admin.ID.String(), Email: admin.Email}, sess.User)
}

func TestLocal_SignIn_InvalidCredentials(t *testing.T) {
	p, _, _ := newTestLocal(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "admin@example.com", password: "wrong"},
		{name: "unknown email", email: "nobody@example.com", password: "correct horse"},
		{name: "empty password", email: "admin@example.com", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := p.SignIn(context.Background(), tt.email, tt.password)
			assert.Nil(t, sess)
			var invalid *ErrInvalidCredentials
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestLocal_SignIn_StoreError(t *testing.T) {
	p, store, _ := newTestLocal(t)
	store.err = errors.New("connection refused")

	_, err := p.SignIn(context.Background(), "admin@example.com", "correct horse")
	require.Error(t, err)
	var invalid *ErrInvalidCredentials
	assert.False(t, errors.As(err, &invalid))
}

func TestLocal_Verify(t *testing.T) {
	p, store, admin := newTestLocal(t)
	ctx := context.Background()

	sess, err := p.SignIn(ctx, "admin@example.com", "correct horse")
	require.NoError(t, err)

	t.Run("access token", func(t *testing.T) {
		user, err := p.Verify(ctx, sess.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, admin.ID.String(), user.ID)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		_, err := p.Verify(ctx, sess.RefreshToken)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := p.Verify(ctx, "garbage")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("deleted admin rejected", func(t *testing.T) {
		delete(store.byID, admin.ID)
		_, err := p.Verify(ctx, sess.AccessToken)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
