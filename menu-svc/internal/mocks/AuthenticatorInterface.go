package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// AuthenticatorInterface is a mock type for the AuthenticatorInterface type
type AuthenticatorInterface struct {
	mock.Mock
}

// Login provides a mock function with given fields: ctx, username, password
func (_m *AuthenticatorInterface) Login(ctx context.Context, username string, password string) (string, error) {
	ret := _m.Called(ctx, username, password)
	return ret.String(0), ret.Error(1)
}

// Logout provides a mock function with given fields: ctx
func (_m *AuthenticatorInterface) Logout(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Authorized provides a mock function with given fields: ctx, token
func (_m *AuthenticatorInterface) Authorized(ctx context.Context, token string) bool {
	ret := _m.Called(ctx, token)
	return ret.Bool(0)
}

// ChangePassword provides a mock function with given fields: ctx, current, next
func (_m *AuthenticatorInterface) ChangePassword(ctx context.Context, current string, next string) error {
	ret := _m.Called(ctx, current, next)
	return ret.Error(0)
}

// SetWriteCredential provides a mock function with given fields: ctx, token
func (_m *AuthenticatorInterface) SetWriteCredential(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

// NewAuthenticatorInterface creates a new instance of AuthenticatorInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthenticatorInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthenticatorInterface {
	m := &AuthenticatorInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
