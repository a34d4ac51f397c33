// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP-recommended).
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2KeyLen  = 32        // output length in bytes
)

// Hasher computes a deterministic one-way digest over a secret and a
// per-user salt.
type Hasher interface {
	// Hash returns a fixed-length printable digest of secret combined
	// with salt. When either input is empty it returns the empty string
	// instead of hashing empty values; callers rely on this sentinel.
	Hash(secret, salt string) string
}

// SHA256Hasher digests sha256(secret + salt), base64 encoded.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Hash returns the base64-encoded SHA-256 digest of secret + salt, or
// the empty string when either input is empty.
func (h *SHA256Hasher) Hash(secret, salt string) string {
	if secret == "" || salt == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(secret + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Argon2idHasher digests argon2id(secret, salt), base64 encoded. It
// honors the same explicit-salt contract as SHA256Hasher, so stored
// (hash, salt) pairs stay interchangeable between the two.
type Argon2idHasher struct{}

// NewArgon2idHasher creates a new Argon2idHasher.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

// Hash returns the base64-encoded argon2id key derived from secret and
// salt, or the empty string when either input is empty.
func (h *Argon2idHasher) Hash(secret, salt string) string {
	if secret == "" || salt == "" {
		return ""
	}
	key := argon2.IDKey([]byte(secret), []byte(salt), argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return base64.StdEncoding.EncodeToString(key)
}

// NewUserRecord builds a User ready for insertion: a fresh random salt
// is generated and the clear-text password replaced by its digest. The
// ID is left empty for the store to assign.
func NewUserRecord(username, password string, hasher Hasher) *User {
	salt := uuid.NewString()
	return &User{
		Username:     username,
		PasswordHash: hasher.Hash(password, salt),
		Salt:         salt,
	}
}
