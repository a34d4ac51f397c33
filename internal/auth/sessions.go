// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package auth

import "sync"

// Sessions is the authenticated-sessions mapping: username to the single
// active token for that username. It is process-local and unshared
// across instances; a restart loses all sessions. It is an injected
// value rather than package state so tests can run isolated instances
// in parallel.
type Sessions struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewSessions creates an empty Sessions map.
func NewSessions() *Sessions {
	return &Sessions{tokens: make(map[string]string)}
}

// TokenFor returns the active token for username, or "" if the username
// is not authenticated.
func (s *Sessions) TokenFor(username string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[username]
}

// UsernameForToken returns the username the token is bound to, or "" if
// the token was never issued. Tokens map 1:1 to at most one username at
// any instant, so the linear scan is unambiguous.
func (s *Sessions) UsernameForToken(token string) string {
	if token == "" {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for username, t := range s.tokens {
		if t == token {
			return username
		}
	}
	return ""
}

// Put stores or refreshes the token for username, replacing any prior
// entry rather than appending.
func (s *Sessions) Put(username, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[username] = token
}

// GetOrPut returns the active token for username, calling mint to
// create and store one when none exists. The lookup and the store are
// a single critical section, so concurrent logins for the same
// username settle on one token; without that, two callers could each
// mint a token and the loser would hold a value the map never kept.
// A mint error leaves the map unchanged.
func (s *Sessions) GetOrPut(username string, mint func() (string, error)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token := s.tokens[username]; token != "" {
		return token, nil
	}
	token, err := mint()
	if err != nil {
		return "", err
	}
	s.tokens[username] = token
	return token, nil
}

// IsAuthenticated reports whether username currently has an active
// session. Pure lookup, no side effects.
func (s *Sessions) IsAuthenticated(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[username]
	return ok
}
