// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/internal/catalog"
	"github.com/cinegraph/cinegraph/internal/store/postgres"
)

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the starter movie catalog into PostgreSQL",
		Long: `Insert the starter movie catalog into the movies table. Existing
titles are left untouched, so seeding is safe to repeat.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, databaseURL)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL")
	return cmd
}

func runSeed(cmd *cobra.Command, databaseURL string) error {
	if databaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("--database-url is required")
	}

	ctx := cmd.Context()

	pool, err := postgres.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	movies := catalog.SeedMovies()
	repo := postgres.NewMovieRepository(pool)
	for _, movie := range movies {
		if err := repo.AddMovie(ctx, movie); err != nil {
			return oops.With("title", movie.Title).Wrap(err)
		}
	}

	cmd.Println("Seeded", len(movies), "movies")
	return nil
}
