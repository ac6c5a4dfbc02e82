package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetAdminUserByEmail retrieves an admin by email (case-insensitive). Returns nil, nil when absent.
func (db *DB) GetAdminUserByEmail(ctx context.Context, email string) (*AdminUser, error) {
	var u AdminUser
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admin_users WHERE email = $1`,
		normalizeEmail(email),
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	return &u, nil
}

// GetAdminUser retrieves an admin by ID. Returns nil, nil when absent.
func (db *DB) GetAdminUser(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	var u AdminUser
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admin_users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	return &u, nil
}

// CreateAdminUser inserts an admin, or replaces the password of an existing one with the same email.
func (db *DB) CreateAdminUser(ctx context.Context, email, passwordHash string) (*AdminUser, error) {
	var u AdminUser
	err := db.pool.QueryRow(ctx,
		`INSERT INTO admin_users (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		 RETURNING id, email, password_hash, created_at`,
		uuid.New(), normalizeEmail(email), passwordHash,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
