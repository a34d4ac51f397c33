// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package auth

import "context"

// Manager is the public authentication contract. Implementations are
// interchangeable at startup time without client changes.
//
// Validation failures and credential failures are not errors: they
// surface as the zero Result with a nil error. A non-nil error always
// means a backend fault (store connectivity, token signing) and is
// never used to signal bad credentials.
type Manager interface {
	// AddOrAuthenticateUser creates the user if the username is unknown,
	// then attempts authentication with the supplied password. Calling it
	// twice with the same credentials neither duplicates the record nor
	// mints a second token.
	AddOrAuthenticateUser(ctx context.Context, username, password string) (Result, error)

	// AuthenticateUser checks the credentials against the store and, on
	// success, issues (or re-uses) the session token for the username.
	AuthenticateUser(ctx context.Context, username, password string) (Result, error)

	// GetUserByToken resolves a previously issued token back to the full
	// stored user record, or nil when the token is unknown.
	GetUserByToken(ctx context.Context, token string) (*User, error)

	// UserIsAuthenticated reports whether the username currently holds an
	// active session.
	UserIsAuthenticated(username string) bool
}
