// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package graph

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/pkg/errutil"
)

// userContextKey is the private key under which the resolved user rides
// in the request context.
type userContextKey struct{}

// WithUser returns a context carrying the resolved user. A nil user is
// stored as-is and reads back as unauthenticated.
func WithUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// CurrentUser returns the user resolved for this request, or nil when
// the request is unauthenticated.
func CurrentUser(ctx context.Context) *auth.User {
	user, _ := ctx.Value(userContextKey{}).(*auth.User)
	return user
}

// AuthContext builds the per-request context: it reads the Authorization
// header, resolves it through the manager, and attaches the result (a
// user or nil) for resolvers to consult. An empty or missing header is
// valid and means unauthenticated; a backend fault fails the request
// rather than masquerading as unauthenticated.
func AuthContext(manager auth.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var user *auth.User

			if token := r.Header.Get("Authorization"); token != "" {
				resolved, err := manager.GetUserByToken(r.Context(), token)
				if err != nil {
					errutil.LogError(logger, "resolving token failed", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
				if resolved != nil {
					logger.Info("retrieved user using token", "user_id", resolved.ID)
				} else {
					logger.Warn("unable to retrieve user using token")
				}
				user = resolved
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
