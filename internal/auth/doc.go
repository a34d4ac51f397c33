// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

// Package auth provides authentication primitives for cinegraph.
//
// # Domain Types
//
// User is the identity record persisted by a UserStore backend. New
// records should be created with NewUserRecord, which generates the
// per-user salt and hashes the clear-text password; direct struct
// initialization bypasses that and may create invalid state.
//
// # Managers
//
// Manager is the public authentication contract. Two interchangeable
// strategies implement it:
//   - SessionManager - opaque random tokens remembered in a Sessions map
//   - JWTManager - HS256 signed tokens carrying the username
//
// Both strategies share the Sessions bookkeeping, so the at-most-one
// token per username rule and UserIsAuthenticated behave identically
// regardless of which strategy is configured.
package auth
