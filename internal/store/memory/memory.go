// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

// Package memory provides in-memory store backends. They favor clarity
// over performance and exist for demos and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/catalog"
)

// UserStore implements auth.UserStore with a mutex-guarded map keyed by
// username.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]auth.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]auth.User)}
}

// GetUser retrieves a user by username.
func (s *UserStore) GetUser(_ context.Context, username string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	return &user, nil
}

// AddUser stores a new user, assigning a ULID on first insert. Adding an
// existing username returns the stored ID without a duplicate write.
func (s *UserStore) AddUser(_ context.Context, user *auth.User) (string, error) {
	if user == nil {
		return "", oops.Code("USER_ADD_FAILED").Errorf("user record is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.Username]; ok {
		return existing.ID, nil
	}

	stored := *user
	stored.ID = ulid.Make().String()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.users[user.Username] = stored
	return stored.ID, nil
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// MovieStore implements catalog.MovieStore over a fixed slice.
type MovieStore struct {
	mu     sync.RWMutex
	movies []catalog.Movie
}

// NewMovieStore creates a MovieStore holding the given movies.
func NewMovieStore(movies []catalog.Movie) *MovieStore {
	return &MovieStore{movies: movies}
}

// GetMovies returns a copy of the catalog.
func (s *MovieStore) GetMovies(_ context.Context) ([]catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Movie, len(s.movies))
	copy(out, s.movies)
	return out, nil
}

var (
	_ auth.UserStore     = (*UserStore)(nil)
	_ catalog.MovieStore = (*MovieStore)(nil)
)
