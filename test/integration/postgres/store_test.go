// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

//go:build integration

package postgres_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/catalog"
	"github.com/cinegraph/cinegraph/internal/store/postgres"
)

var _ = Describe("UserRepository", func() {
	var repo *postgres.UserRepository
	ctx := context.Background()

	BeforeEach(func() {
		_, err := pool.Exec(ctx, "TRUNCATE users")
		Expect(err).NotTo(HaveOccurred())
		repo = postgres.NewUserRepository(pool)
	})

	It("stores a record and reads it back", func() {
		record := auth.NewUserRecord("alice", "opensesame", auth.NewSHA256Hasher())

		id, err := repo.AddUser(ctx, record)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(HaveLen(26)) // ULID

		user, err := repo.GetUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(user.ID).To(Equal(id))
		Expect(user.PasswordHash).To(Equal(record.PasswordHash))
		Expect(user.Salt).To(Equal(record.Salt))
		Expect(user.CreatedAt).NotTo(BeZero())
	})

	It("wraps a missing username in ErrNotFound", func() {
		_, err := repo.GetUser(ctx, "nobody")
		Expect(err).To(MatchError(auth.ErrNotFound))
	})

	It("re-adding a username returns the stored ID without a duplicate", func() {
		first, err := repo.AddUser(ctx, auth.NewUserRecord("alice", "opensesame", auth.NewSHA256Hasher()))
		Expect(err).NotTo(HaveOccurred())

		second, err := repo.AddUser(ctx, auth.NewUserRecord("alice", "different", auth.NewSHA256Hasher()))
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))

		var count int
		err = pool.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&count)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})

	It("serves a full login round trip through the auth manager", func() {
		manager, err := auth.NewSessionManager(repo, auth.NewSessions(), auth.NewSHA256Hasher())
		Expect(err).NotTo(HaveOccurred())

		signup, err := manager.AddOrAuthenticateUser(ctx, "scout", "opensesame")
		Expect(err).NotTo(HaveOccurred())
		Expect(signup.Authenticated()).To(BeTrue())

		login, err := manager.AuthenticateUser(ctx, "scout", "opensesame")
		Expect(err).NotTo(HaveOccurred())
		Expect(login.Token).To(Equal(signup.Token))

		user, err := manager.GetUserByToken(ctx, login.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(user).NotTo(BeNil())
		Expect(user.Username).To(Equal("scout"))
	})
})

var _ = Describe("MovieRepository", func() {
	var repo *postgres.MovieRepository
	ctx := context.Background()

	BeforeEach(func() {
		_, err := pool.Exec(ctx, "TRUNCATE movies")
		Expect(err).NotTo(HaveOccurred())
		repo = postgres.NewMovieRepository(pool)
	})

	It("returns an empty catalog from an empty table", func() {
		movies, err := repo.GetMovies(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(movies).To(BeEmpty())
	})

	It("round-trips the seed catalog through jsonb", func() {
		for _, movie := range catalog.SeedMovies() {
			Expect(repo.AddMovie(ctx, movie)).To(Succeed())
		}

		movies, err := repo.GetMovies(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(movies).To(HaveLen(4))

		// GetMovies orders by year; the seed's oldest entry comes first.
		first := movies[0]
		Expect(first.Title).To(Equal("Gone with the Wind"))
		Expect(first.Year).To(Equal(1939))
		Expect(first.Actors).NotTo(BeEmpty())
		Expect(first.Actors[0].Name).To(Equal("Vivien Leigh"))
		Expect(first.Actors[0].BirthdayTimestamp).To(Equal(int64(-1772150400)))
		Expect(first.Directors).NotTo(BeEmpty())
	})

	It("treats a duplicate title as a no-op", func() {
		seed := catalog.SeedMovies()
		Expect(repo.AddMovie(ctx, seed[0])).To(Succeed())
		Expect(repo.AddMovie(ctx, seed[0])).To(Succeed())

		movies, err := repo.GetMovies(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(movies).To(HaveLen(1))
	})
})
