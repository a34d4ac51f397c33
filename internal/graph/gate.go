// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package graph

import (
	"log/slog"

	"github.com/graphql-go/graphql"

	"github.com/cinegraph/cinegraph/internal/observability"
)

// SentinelNotAuthorized replaces a gated field's value when the request
// carries no authenticated user. It is a normal resolved value, not an
// error, so the rest of the response still succeeds; clients of gated
// fields must treat it as a possible value regardless of the field's
// declared type.
const SentinelNotAuthorized = "NOT AUTHORIZED"

// RequireAuth wraps a field resolver with an authentication pre-check
// against the request context. When required is false the wrapper is
// transparent. The underlying resolver is otherwise invoked unmodified,
// so the gate composes with whatever resolution the field already uses.
func RequireAuth(required bool, next graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if required && CurrentUser(p.Context) == nil {
			slog.Warn("user not authorized for field", "field", p.Info.FieldName)
			observability.RecordAuthDenial(p.Info.FieldName)
			return SentinelNotAuthorized, nil
		}
		return next(p)
	}
}
