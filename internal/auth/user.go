// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package auth

import (
	"context"
	"time"
)

// User represents a stored identity record.
//
// PasswordHash and Salt are set together at creation and never mutated
// independently afterwards. The clear-text password is never stored.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}

// UserStore persists identity records. Implementations must enforce
// username uniqueness.
type UserStore interface {
	// GetUser retrieves a user by username. Returns an error wrapping
	// ErrNotFound when no such user exists.
	GetUser(ctx context.Context, username string) (*User, error)

	// AddUser stores a new user and returns its assigned ID. Adding a
	// username that already exists is not an error: the existing ID is
	// returned and no duplicate record is written.
	AddUser(ctx context.Context, user *User) (string, error)
}

// InputIsValid reports whether a username/password pair passes the
// presence check that gates every store mutation and hash computation.
// No further validation (length limits, character sets) is applied.
// Pure predicate; callers log rejections through their own logger.
func InputIsValid(username, password string) bool {
	return username != "" && password != ""
}
