// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinegraph/cinegraph/internal/auth"
)

// UserRepository implements auth.UserStore using PostgreSQL.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser retrieves a user by username.
func (r *UserRepository) GetUser(ctx context.Context, username string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, salt, created_at
		FROM users
		WHERE username = $1
	`, username)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").
			With("operation", "get user by username").
			With("username", username).
			Wrap(err)
	}
	return user, nil
}

// AddUser stores a new user, assigning a ULID. A username that already
// exists returns the stored ID without inserting a duplicate; the
// unique constraint catches concurrent first inserts and the loser
// re-reads the winner's row.
func (r *UserRepository) AddUser(ctx context.Context, user *auth.User) (string, error) {
	if user == nil {
		return "", oops.Code("USER_ADD_FAILED").Errorf("user record is required")
	}

	existing, err := r.GetUser(ctx, user.Username)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, auth.ErrNotFound) {
		return "", err
	}

	id := ulid.Make().String()
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, salt, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, user.Username, user.PasswordHash, user.Salt, createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			winner, getErr := r.GetUser(ctx, user.Username)
			if getErr != nil {
				return "", getErr
			}
			return winner.ID, nil
		}
		return "", oops.Code("USER_ADD_FAILED").
			With("operation", "insert user").
			With("username", user.Username).
			Wrap(err)
	}
	return id, nil
}

// scanUser scans a single row into a User. Callers are responsible for
// handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Salt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}
	return &u, nil
}

// Compile-time interface check.
var _ auth.UserStore = (*UserRepository)(nil)
