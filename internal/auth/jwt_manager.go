// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// DefaultJWTTTL is the validity window applied when no TTL is configured.
const DefaultJWTTTL = 24 * time.Hour

// JWTManager is the signed-token authentication strategy. Tokens are
// HS256 JWTs carrying the username as subject, so identity resolution
// does not depend on a reverse scan. Issued tokens are still recorded
// in the Sessions map to preserve the one-active-token-per-username
// rule and the UserIsAuthenticated contract.
type JWTManager struct {
	store    UserStore
	sessions *Sessions
	hasher   Hasher
	secret   []byte
	ttl      time.Duration
	logger   *slog.Logger
}

// jwtClaims are the registered claims plus nothing; the username rides
// in the standard subject claim.
type jwtClaims struct {
	jwt.RegisteredClaims
}

// NewJWTManager creates a JWTManager. A zero ttl falls back to
// DefaultJWTTTL.
func NewJWTManager(store UserStore, sessions *Sessions, hasher Hasher, secret []byte, ttl time.Duration) (*JWTManager, error) {
	return NewJWTManagerWithLogger(store, sessions, hasher, secret, ttl, slog.Default())
}

// NewJWTManagerWithLogger creates a JWTManager with an explicit logger.
func NewJWTManagerWithLogger(store UserStore, sessions *Sessions, hasher Hasher, secret []byte, ttl time.Duration, logger *slog.Logger) (*JWTManager, error) {
	if store == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("user store is required")
	}
	if sessions == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("sessions map is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("hasher is required")
	}
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("signing secret is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("logger is required")
	}
	if ttl <= 0 {
		ttl = DefaultJWTTTL
	}
	return &JWTManager{store: store, sessions: sessions, hasher: hasher, secret: secret, ttl: ttl, logger: logger}, nil
}

// AddOrAuthenticateUser creates the user if absent, then authenticates.
func (m *JWTManager) AddOrAuthenticateUser(ctx context.Context, username, password string) (Result, error) {
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

// AuthenticateUser checks the password against the stored digest and,
// on success, signs a JWT for the username unless one is already active.
func (m *JWTManager) AuthenticateUser(ctx context.Context, username, password string) (Result, error) {
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
		return m.sign(username)
	})
	if err != nil {
		return Result{}, oops.Code("AUTH_TOKEN_SIGN_FAILED").
			With("operation", "sign token").
			With("username", username).
			Wrap(err)
	}

	return Result{
		Token: token,
		User:  ResultUser{ID: user.ID, Name: user.Username},
	}, nil
}

// GetUserByToken verifies the token signature and expiry, confirms it is
// the active token for its subject, and fetches the record. Invalid,
// expired, or superseded tokens resolve to nil without error.
func (m *JWTManager) GetUserByToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, nil
	}

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		m.logger.Warn("token failed verification")
		return nil, nil
	}

	username := claims.Subject
	if m.sessions.TokenFor(username) != token {
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
func (m *JWTManager) UserIsAuthenticated(username string) bool {
	return m.sessions.IsAuthenticated(username)
}

func (m *JWTManager) sign(username string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Compile-time interface check.
var _ Manager = (*JWTManager)(nil)
