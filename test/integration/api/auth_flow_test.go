// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

//go:build integration

package api_test

import (
	"context"
	"strconv"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

var _ = Describe("Authentication Flow", Ordered, func() {
	var signupToken string

	It("signs up a new user and returns a token", func() {
		resp := query("", `mutation {
			createUser(username: "scout", password: "opensesame") {
				token
				user { id name }
			}
		}`)
		Expect(resp.Errors).To(BeEmpty())

		token, user := authPayload(resp, "createUser")
		Expect(token).NotTo(BeEmpty())
		Expect(user["id"]).NotTo(BeEmpty())
		Expect(user["name"]).To(Equal("scout"))

		signupToken = token
	})

	It("records the signup in the user store", func() {
		user, err := env.users.GetUser(context.Background(), "scout")
		Expect(err).NotTo(HaveOccurred())
		Expect(user.PasswordHash).NotTo(BeEmpty())
		Expect(user.PasswordHash).NotTo(Equal("opensesame"))
		Expect(env.manager.UserIsAuthenticated("scout")).To(BeTrue())
	})

	It("reuses the active token on re-login", func() {
		resp := query("", `mutation {
			login(username: "scout", password: "opensesame") { token }
		}`)
		Expect(resp.Errors).To(BeEmpty())

		token, _ := authPayload(resp, "login")
		Expect(token).To(Equal(signupToken))
	})

	It("denies a wrong password with a null token", func() {
		resp := query("", `mutation {
			login(username: "scout", password: "wrong") {
				token
				user { id name }
			}
		}`)
		Expect(resp.Errors).To(BeEmpty())

		token, user := authPayload(resp, "login")
		Expect(token).To(BeEmpty())
		Expect(user["id"]).To(BeNil())
		Expect(user["name"]).To(BeNil())
	})

	It("denies an unknown username identically to a wrong password", func() {
		resp := query("", `mutation {
			login(username: "stranger", password: "opensesame") { token }
		}`)
		Expect(resp.Errors).To(BeEmpty())

		token, _ := authPayload(resp, "login")
		Expect(token).To(BeEmpty())
	})

	It("does not create a second record when a taken username signs up again", func() {
		before := env.users.Count()

		resp := query("", `mutation {
			createUser(username: "scout", password: "different") { token }
		}`)
		Expect(resp.Errors).To(BeEmpty())

		token, _ := authPayload(resp, "createUser")
		Expect(token).To(BeEmpty())
		Expect(env.users.Count()).To(Equal(before))
	})
})

var _ = Describe("Movie Catalog", func() {
	It("lists all movies without authentication", func() {
		resp := query("", `{
			movies {
				title
				year
				rating
				actors { name country birthday birthday_timestamp }
				directors { name }
			}
		}`)
		Expect(resp.Errors).To(BeEmpty())

		movies, ok := resp.Data["movies"].([]any)
		Expect(ok).To(BeTrue())
		Expect(movies).To(HaveLen(4))

		first, ok := movies[0].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(first["title"]).To(Equal("Gone with the Wind"))
		Expect(first["year"]).To(BeNumerically("==", 1939))

		actors, ok := first["actors"].([]any)
		Expect(ok).To(BeTrue())
		vivien, ok := actors[0].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(vivien["birthday"]).To(Equal("Wed Nov 05 1913"))
		Expect(vivien["birthday_timestamp"]).To(BeNumerically("==", -1772150400))
	})
})

var _ = Describe("Gated Rating Field", Ordered, func() {
	var token string

	BeforeAll(func() {
		resp := query("", `mutation {
			createUser(username: "gatekeeper", password: "letmein") { token }
		}`)
		Expect(resp.Errors).To(BeEmpty())
		token, _ = authPayload(resp, "createUser")
		Expect(token).NotTo(BeEmpty())
	})

	ratingsFor := func(authToken string) []string {
		GinkgoHelper()

		resp := query(authToken, `{ movies { scoutbase_rating } }`)
		Expect(resp.Errors).To(BeEmpty())

		movies, ok := resp.Data["movies"].([]any)
		Expect(ok).To(BeTrue())

		out := make([]string, 0, len(movies))
		for _, raw := range movies {
			movie, ok := raw.(map[string]any)
			Expect(ok).To(BeTrue())
			rating, ok := movie["scoutbase_rating"].(string)
			Expect(ok).To(BeTrue())
			out = append(out, rating)
		}
		return out
	}

	It("returns the sentinel without a token", func() {
		for _, rating := range ratingsFor("") {
			Expect(rating).To(Equal("NOT AUTHORIZED"))
		}
	})

	It("returns the sentinel for a garbage token", func() {
		for _, rating := range ratingsFor("not-a-real-token") {
			Expect(rating).To(Equal("NOT AUTHORIZED"))
		}
	})

	It("resolves real ratings with a valid token", func() {
		for _, rating := range ratingsFor(token) {
			Expect(rating).NotTo(Equal("NOT AUTHORIZED"))

			value, err := strconv.ParseFloat(rating, 64)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(BeNumerically(">=", 5.0))
			Expect(value).To(BeNumerically("<=", 9.1))
		}
	})

	It("leaves ungated fields resolvable alongside the sentinel", func() {
		resp := query("", `{ movies { title scoutbase_rating } }`)
		Expect(resp.Errors).To(BeEmpty())

		movies := resp.Data["movies"].([]any)
		first := movies[0].(map[string]any)
		Expect(first["title"]).To(Equal("Gone with the Wind"))
		Expect(first["scoutbase_rating"]).To(Equal("NOT AUTHORIZED"))
	})
})
