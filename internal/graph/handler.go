// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewHandler returns the HTTP handler serving the GraphQL endpoint.
// GraphiQL is enabled for interactive exploration.
func NewHandler(schema graphql.Schema) http.Handler {
	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
}
