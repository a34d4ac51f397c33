// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

// Package catalog holds the movie domain model served over GraphQL.
package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Person is an actor or director embedded in a Movie. Birthdays are
// stored as unix timestamps; several seed entries predate 1970 and are
// negative, which is why the GraphQL schema exposes them as BigInt.
type Person struct {
	Name              string `json:"name"`
	Country           string `json:"country"`
	BirthdayTimestamp int64  `json:"birthday_timestamp"`
}

// Movie is a catalog entry with embedded actor and director records.
type Movie struct {
	Title     string   `json:"title"`
	Year      int      `json:"year"`
	Rating    string   `json:"rating"`
	Actors    []Person `json:"actors"`
	Directors []Person `json:"directors"`
}

// MovieStore retrieves the movie catalog.
type MovieStore interface {
	// GetMovies returns all movies.
	GetMovies(ctx context.Context) ([]Movie, error)
}

// ScoutbaseRating returns a random rating between 5.0 and 9.1 formatted
// to one decimal place. It is recomputed on every resolution.
func ScoutbaseRating() string {
	return fmt.Sprintf("%.1f", rand.Float64()*4.1+5)
}
