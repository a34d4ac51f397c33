// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package postgres

import (
	"context"
	"encoding/json"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinegraph/cinegraph/internal/catalog"
)

// MovieRepository implements catalog.MovieStore using PostgreSQL.
// Actors and directors are embedded documents, stored as jsonb.
type MovieRepository struct {
	db DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// GetMovies returns all movies ordered by year.
func (r *MovieRepository) GetMovies(ctx context.Context) ([]catalog.Movie, error) {
	rows, err := r.db.Query(ctx, `
		SELECT title, year, rating, actors, directors
		FROM movies
		ORDER BY year
	`)
	if err != nil {
		return nil, oops.Code("MOVIE_QUERY_FAILED").
			With("operation", "query movies").
			Wrap(err)
	}
	defer rows.Close()

	var movies []catalog.Movie
	for rows.Next() {
		var (
			m             catalog.Movie
			actorsJSON    []byte
			directorsJSON []byte
		)
		if err := rows.Scan(&m.Title, &m.Year, &m.Rating, &actorsJSON, &directorsJSON); err != nil {
			return nil, oops.Code("MOVIE_SCAN_FAILED").
				With("operation", "scan movie row").
				Wrap(err)
		}
		if len(actorsJSON) > 0 {
			if err := json.Unmarshal(actorsJSON, &m.Actors); err != nil {
				return nil, oops.Code("MOVIE_INVALID_ACTORS").
					With("title", m.Title).
					Wrap(err)
			}
		}
		if len(directorsJSON) > 0 {
			if err := json.Unmarshal(directorsJSON, &m.Directors); err != nil {
				return nil, oops.Code("MOVIE_INVALID_DIRECTORS").
					With("title", m.Title).
					Wrap(err)
			}
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("MOVIE_QUERY_FAILED").
			With("operation", "iterate movies").
			Wrap(err)
	}
	return movies, nil
}

// AddMovie inserts a movie. Titles are unique; re-inserting an existing
// title is a no-op, which keeps seeding idempotent.
func (r *MovieRepository) AddMovie(ctx context.Context, movie catalog.Movie) error {
	actorsJSON, err := json.Marshal(movie.Actors)
	if err != nil {
		return oops.Code("MOVIE_ADD_FAILED").
			With("operation", "marshal actors").
			With("title", movie.Title).
			Wrap(err)
	}
	directorsJSON, err := json.Marshal(movie.Directors)
	if err != nil {
		return oops.Code("MOVIE_ADD_FAILED").
			With("operation", "marshal directors").
			With("title", movie.Title).
			Wrap(err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO movies (id, title, year, rating, actors, directors)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (title) DO NOTHING
	`, ulid.Make().String(), movie.Title, movie.Year, movie.Rating, actorsJSON, directorsJSON)
	if err != nil {
		return oops.Code("MOVIE_ADD_FAILED").
			With("operation", "insert movie").
			With("title", movie.Title).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ catalog.MovieStore = (*MovieRepository)(nil)
