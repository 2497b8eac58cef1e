package mocks

import (
	context "context"
	time "time"

	domain "cafe-menu/menu-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// Store is a mock type for the Store type
type Store struct {
	mock.Mock
}

// LoadSnapshot provides a mock function with given fields: ctx
func (_m *Store) LoadSnapshot(ctx context.Context) (domain.Menu, error) {
	ret := _m.Called(ctx)

	var r0 domain.Menu
	if rf, ok := ret.Get(0).(func(context.Context) domain.Menu); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Menu)
	}

	return r0, ret.Error(1)
}

// SaveSnapshot provides a mock function with given fields: ctx, menu
func (_m *Store) SaveSnapshot(ctx context.Context, menu domain.Menu) error {
	ret := _m.Called(ctx, menu)
	return ret.Error(0)
}

// CachedAt provides a mock function with given fields: ctx
func (_m *Store) CachedAt(ctx context.Context) (time.Time, error) {
	ret := _m.Called(ctx)

	var r0 time.Time
	if rf, ok := ret.Get(0).(func(context.Context) time.Time); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(time.Time)
	}

	return r0, ret.Error(1)
}

// MarkFetched provides a mock function with given fields: ctx, at
func (_m *Store) MarkFetched(ctx context.Context, at time.Time) error {
	ret := _m.Called(ctx, at)
	return ret.Error(0)
}

// InvalidateCache provides a mock function with given fields: ctx
func (_m *Store) InvalidateCache(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// AdminSession provides a mock function with given fields: ctx
func (_m *Store) AdminSession(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// SetAdminSession provides a mock function with given fields: ctx, token
func (_m *Store) SetAdminSession(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

// ClearAdminSession provides a mock function with given fields: ctx
func (_m *Store) ClearAdminSession(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// WriteCredential provides a mock function with given fields: ctx
func (_m *Store) WriteCredential(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// SetWriteCredential provides a mock function with given fields: ctx, token
func (_m *Store) SetWriteCredential(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

// PasswordVerifier provides a mock function with given fields: ctx
func (_m *Store) PasswordVerifier(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// SetPasswordVerifier provides a mock function with given fields: ctx, hash
func (_m *Store) SetPasswordVerifier(ctx context.Context, hash string) error {
	ret := _m.Called(ctx, hash)
	return ret.Error(0)
}

// NewStore creates a new instance of Store. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *Store {
	m := &Store{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
