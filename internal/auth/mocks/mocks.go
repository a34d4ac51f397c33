// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

// Package mocks provides testify mocks for auth interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cinegraph/cinegraph/internal/auth"
)

// MockUserStore is a mock implementation of auth.UserStore.
type MockUserStore struct {
	mock.Mock
}

// NewMockUserStore creates a MockUserStore with expectations asserted on
// test cleanup.
func NewMockUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserStore {
	m := &MockUserStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GetUser mocks auth.UserStore.GetUser.
func (m *MockUserStore) GetUser(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

// AddUser mocks auth.UserStore.AddUser.
func (m *MockUserStore) AddUser(ctx context.Context, user *auth.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

// MockManager is a mock implementation of auth.Manager.
type MockManager struct {
	mock.Mock
}

// NewMockManager creates a MockManager with expectations asserted on
// test cleanup.
func NewMockManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockManager {
	m := &MockManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AddOrAuthenticateUser mocks auth.Manager.AddOrAuthenticateUser.
func (m *MockManager) AddOrAuthenticateUser(ctx context.Context, username, password string) (auth.Result, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(auth.Result)
	return result, args.Error(1)
}

// AuthenticateUser mocks auth.Manager.AuthenticateUser.
func (m *MockManager) AuthenticateUser(ctx context.Context, username, password string) (auth.Result, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(auth.Result)
	return result, args.Error(1)
}

// GetUserByToken mocks auth.Manager.GetUserByToken.
func (m *MockManager) GetUserByToken(ctx context.Context, token string) (*auth.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

// UserIsAuthenticated mocks auth.Manager.UserIsAuthenticated.
func (m *MockManager) UserIsAuthenticated(username string) bool {
	args := m.Called(username)
	return args.Bool(0)
}

var (
	_ auth.UserStore = (*MockUserStore)(nil)
	_ auth.Manager   = (*MockManager)(nil)
)
