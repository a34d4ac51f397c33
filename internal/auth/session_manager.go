// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/oops"
)

// SessionManager authenticates against a UserStore and remembers issued
// tokens in an in-memory Sessions map. Tokens are opaque random values
// with no expiry; they live for the life of the process.
type SessionManager struct {
	store    UserStore
	sessions *Sessions
	hasher   Hasher
	logger   *slog.Logger
}

// NewSessionManager creates a SessionManager.
func NewSessionManager(store UserStore, sessions *Sessions, hasher Hasher) (*SessionManager, error) {
	return NewSessionManagerWithLogger(store, sessions, hasher, slog.Default())
}

// NewSessionManagerWithLogger creates a SessionManager with an explicit logger.
func NewSessionManagerWithLogger(store UserStore, sessions *Sessions, hasher Hasher, logger *slog.Logger) (*SessionManager, error) {
	if store == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("user store is required")
	}
	if sessions == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("sessions map is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("hasher is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("logger is required")
	}
	return &SessionManager{store: store, sessions: sessions, hasher: hasher, logger: logger}, nil
}

// AddOrAuthenticateUser creates the user if absent, then authenticates.
// Invalid input skips creation and falls through to authentication,
// which fails the same presence check and returns the zero Result. If
// the username already exists with a different password, the caller's
// password is still tried and correctly rejected.
func (m *SessionManager) AddOrAuthenticateUser(ctx context.Context, username, password string) (Result, error) {
	if InputIsValid(username, password) {
		_, err := m.store.GetUser(ctx, username)
		switch {
		case errors.Is(err, ErrNotFound):
			m.logger.Info("user does not exist, will attempt to add", "username", username)
			if _, addErr := m.store.AddUser(ctx, NewUserRecord(username, password, m.hasher)); addErr != nil {
				return Result{}, oops.Code("AUTH_SIGNUP_FAILED").
					With("operation", "add user").
					With("username", username).
					Wrap(addErr)
			}
		case err != nil:
			return Result{}, oops.Code("AUTH_SIGNUP_FAILED").
				With("operation", "get user by username").
				With("username", username).
				Wrap(err)
		}
	}
	return m.AuthenticateUser(ctx, username, password)
}

// AuthenticateUser checks the password against the stored digest and
// issues or re-uses the session token. Unknown usernames and wrong
// passwords both yield the zero Result; only the log line differs.
func (m *SessionManager) AuthenticateUser(ctx context.Context, username, password string) (Result, error) {
	if !InputIsValid(username, password) {
		m.logger.Warn("credential input failed validation", "username", username)
		return Result{}, nil
	}

	user, err := m.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			m.logger.Warn("user was not found, could not authenticate", "username", username)
			return Result{}, nil
		}
		return Result{}, oops.Code("AUTH_LOOKUP_FAILED").
			With("operation", "get user by username").
			With("username", username).
			Wrap(err)
	}

	computed := m.hasher.Hash(password, user.Salt)
	if computed == "" || subtle.ConstantTimeCompare([]byte(computed), []byte(user.PasswordHash)) != 1 {
		m.logger.Warn("auth rejected, invalid password", "username", username)
		return Result{}, nil
	}

	m.logger.Info("user passed authentication", "username", username)

	token, err := m.sessions.GetOrPut(username, func() (string, error) {
		return uuid.NewString(), nil
	})
	if err != nil {
		return Result{}, oops.Code("AUTH_TOKEN_ISSUE_FAILED").
			With("operation", "issue token").
			With("username", username).
			Wrap(err)
	}

	return Result{
		Token: token,
		User:  ResultUser{ID: user.ID, Name: user.Username},
	}, nil
}

// GetUserByToken scans the sessions map for the token's username and
// fetches the full record from the store. Unknown tokens resolve to nil
// without error; a record removed from the store since login also
// resolves to nil.
func (m *SessionManager) GetUserByToken(ctx context.Context, token string) (*User, error) {
	username := m.sessions.UsernameForToken(token)
	if username == "" {
		m.logger.Warn("token not found among authenticated users")
		return nil, nil
	}

	user, err := m.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			m.logger.Warn("user not found", "username", username)
			return nil, nil
		}
		return nil, oops.Code("AUTH_LOOKUP_FAILED").
			With("operation", "get user by token").
			With("username", username).
			Wrap(err)
	}

	m.logger.Info("user is authorized", "username", username)
	return user, nil
}

// UserIsAuthenticated reports whether the username has an active session.
func (m *SessionManager) UserIsAuthenticated(username string) bool {
	return m.sessions.IsAuthenticated(username)
}

// Compile-time interface check.
var _ Manager = (*SessionManager)(nil)
