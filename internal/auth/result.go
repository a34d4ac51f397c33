// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package auth

// Result is the outcome of a login or signup attempt. The zero value is
// the failure shape: every field empty, which the GraphQL layer renders
// as null. Validation failures and authentication failures produce the
// same zero Result so callers cannot distinguish a wrong password from
// an unknown username.
type Result struct {
	Token string
	User  ResultUser
}

// ResultUser identifies the authenticated user inside a Result.
type ResultUser struct {
	ID   string
	Name string
}

// Authenticated reports whether the result carries a token.
func (r Result) Authenticated() bool {
	return r.Token != ""
}
