package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultBcryptCost = 12
	minBcryptCost     = 10
	maxBcryptCost     = 14

	// MinPasswordLength is the shortest admin password accepted by CheckPolicy.
	MinPasswordLength = 8
	// bcrypt ignores input past this many bytes.
	maxPasswordBytes = 72
)

// ErrWeakPassword is returned by CheckPolicy for passwords that may not be stored.
var ErrWeakPassword = errors.New("weak password")

// PasswordConfig controls how admin passwords for the local identity provider
// are hashed and checked.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // appended to every password before hashing
}

// NewPasswordConfig reads BCRYPT_COST (default 12, allowed 10-14) and the
// optional PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost := defaultBcryptCost
	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cost = parsed
	}

	pc := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}
	if err := pc.normalize(); err != nil {
		return nil, err
	}
	return pc, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", c.BcryptCost, minBcryptCost, maxBcryptCost)
	}
	return nil
}

// CheckPolicy rejects passwords an admin account may not be created with.
func (c *PasswordConfig) CheckPolicy(pw string) error {
	switch {
	case strings.TrimSpace(pw) == "":
		return fmt.Errorf("%w: password is blank", ErrWeakPassword)
	case len(pw) < MinPasswordLength:
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	case len(pw)+len(c.Pepper) > maxPasswordBytes:
		return fmt.Errorf("%w: password and pepper exceed %d bytes", ErrWeakPassword, maxPasswordBytes)
	}
	return nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// HashPassword returns the bcrypt hash of the peppered password.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	if pw == "" {
		return "", fmt.Errorf("failed to hash password: password is empty")
	}

	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("failed to hash password: password and pepper exceed %d bytes", maxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}
