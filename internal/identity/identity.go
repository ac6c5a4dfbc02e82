// Package identity authenticates admin users and verifies their sessions.
package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated indicates a missing, invalid or expired session.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrInvalidCredentials indicates a failed sign-in.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// User is a verified admin identity. Any verified identity is an admin.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int // seconds until the access token expires
	User         User
}

// Provider signs admins in and verifies access tokens.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Verify(ctx context.Context, accessToken string) (*User, error)
}
