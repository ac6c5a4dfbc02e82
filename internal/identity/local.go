package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/careers-portal/internal/config"
	"github.com/jonathan/careers-portal/internal/db"
)

// AdminStore looks up locally managed admins. *db.DB satisfies it.
type AdminStore interface {
	GetAdminUserByEmail(ctx context.Context, email string) (*db.AdminUser, error)
	GetAdminUser(ctx context.Context, id uuid.UUID) (*db.AdminUser, error)
}

// Local authenticates admins stored in Postgres and issues its own tokens.
type Local struct {
	store     AdminStore
	passwords *config.PasswordConfig
	tokens    *TokenService
}

// NewLocal creates a Local provider.
func NewLocal(store AdminStore, passwords *config.PasswordConfig, tokens *TokenService) *Local {
	return &Local{store: store, passwords: passwords, tokens: tokens}
}

// SignIn checks the password and issues access and refresh tokens.
func (p *Local) SignIn(ctx context.Context, email, password string) (*Session, error) {
	admin, err := p.store.GetAdminUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil || !p.passwords.VerifyPassword(password, admin.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	access, err := p.tokens.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := p.tokens.GenerateRefreshToken(admin.ID, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(p.tokens.AccessTTL().Seconds()),
		User:         User{ID: admin.ID.String(), Email: admin.Email},
	}, nil
}

// Verify accepts only unexpired access tokens of admins that still exist.
func (p *Local) Verify(ctx context.Context, accessToken string) (*User, error) {
	claims, err := p.tokens.ValidateToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, fmt.Errorf("%w: not an access token", ErrUnauthenticated)
	}

	admin, err := p.store.GetAdminUser(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		return nil, fmt.Errorf("%w: admin no longer exists", ErrUnauthenticated)
	}

	return &User{ID: admin.ID.String(), Email: admin.Email}, nil
}
