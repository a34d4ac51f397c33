// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

// Package graph defines the GraphQL schema, resolvers, and the
// field-authorization gate.
package graph

import (
	"log/slog"

	"github.com/graphql-go/graphql"
	"github.com/samber/oops"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/catalog"
	"github.com/cinegraph/cinegraph/internal/observability"
)

// Config carries the collaborators the schema resolves against.
type Config struct {
	Movies  catalog.MovieStore
	Auth    auth.Manager
	Metrics *observability.Metrics // optional
	Logger  *slog.Logger           // optional, defaults to slog.Default
}

// NewSchema builds the executable schema: the movie catalog query, the
// login/createUser mutations, and the gated scoutbase_rating field.
func NewSchema(cfg Config) (graphql.Schema, error) {
	if cfg.Movies == nil {
		return graphql.Schema{}, oops.Code("GRAPH_INVALID_DEPS").Errorf("movie store is required")
	}
	if cfg.Auth == nil {
		return graphql.Schema{}, oops.Code("GRAPH_INVALID_DEPS").Errorf("auth manager is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					u, _ := p.Source.(auth.ResultUser)
					return nullableString(u.ID), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					u, _ := p.Source.(auth.ResultUser)
					return nullableString(u.Name), nil
				},
			},
		},
	})

	personType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Person",
		Fields: graphql.Fields{
			"name":               &graphql.Field{Type: graphql.String},
			"birthday_timestamp": &graphql.Field{Type: graphql.NewNonNull(BigInt)},
			"birthday": &graphql.Field{
				Type: DateTime,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					person, ok := p.Source.(catalog.Person)
					if !ok {
						return nil, nil
					}
					return person.BirthdayTimestamp, nil
				},
			},
			"country": &graphql.Field{Type: graphql.String},
		},
	})

	movieType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Movie",
		Fields: graphql.Fields{
			"title":     &graphql.Field{Type: graphql.String},
			"year":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"rating":    &graphql.Field{Type: graphql.String},
			"actors":    &graphql.Field{Type: graphql.NewList(personType)},
			"directors": &graphql.Field{Type: graphql.NewList(personType)},
			"scoutbase_rating": &graphql.Field{
				Type: graphql.String,
				Resolve: RequireAuth(true, func(graphql.ResolveParams) (any, error) {
					return catalog.ScoutbaseRating(), nil
				}),
			},
		},
	})

	authOutputType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthOutput",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					result, _ := p.Source.(auth.Result)
					return nullableString(result.Token), nil
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					result, _ := p.Source.(auth.Result)
					return result.User, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"movies": &graphql.Field{
				Type: graphql.NewList(movieType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					movies, err := cfg.Movies.GetMovies(p.Context)
					if err != nil {
						return nil, oops.Code("GRAPH_MOVIES_FAILED").
							With("operation", "get movies").
							Wrap(err)
					}
					return movies, nil
				},
			},
		},
	})

	credentialArgs := graphql.FieldConfigArgument{
		"username": &graphql.ArgumentConfig{Type: graphql.String},
		"password": &graphql.ArgumentConfig{Type: graphql.String},
	}

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authOutputType,
				Args: credentialArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					result, err := cfg.Auth.AuthenticateUser(p.Context, stringArg(p, "username"), stringArg(p, "password"))
					if err != nil {
						return nil, err
					}
					recordLogin(cfg.Metrics, result)
					return result, nil
				},
			},
			"createUser": &graphql.Field{
				Type: authOutputType,
				Args: credentialArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					result, err := cfg.Auth.AddOrAuthenticateUser(p.Context, stringArg(p, "username"), stringArg(p, "password"))
					if err != nil {
						return nil, err
					}
					recordLogin(cfg.Metrics, result)
					return result, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return graphql.Schema{}, oops.Code("GRAPH_SCHEMA_FAILED").
			With("operation", "build schema").
			Wrap(err)
	}
	return schema, nil
}

// stringArg extracts a string argument, treating absence as empty.
func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

// nullableString maps the zero value to GraphQL null.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func recordLogin(m *observability.Metrics, result auth.Result) {
	if m == nil {
		return
	}
	outcome := "denied"
	if result.Authenticated() {
		outcome = "success"
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}
