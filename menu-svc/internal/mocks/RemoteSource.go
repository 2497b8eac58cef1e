package mocks

import (
	context "context"

	domain "cafe-menu/menu-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// RemoteSource is a mock type for the RemoteSource type
type RemoteSource struct {
	mock.Mock
}

// Fetch provides a mock function with given fields: ctx
func (_m *RemoteSource) Fetch(ctx context.Context) (domain.Menu, error) {
	ret := _m.Called(ctx)

	var r0 domain.Menu
	if rf, ok := ret.Get(0).(func(context.Context) domain.Menu); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Menu)
	}

	return r0, ret.Error(1)
}

// Write provides a mock function with given fields: ctx, menu, credential
func (_m *RemoteSource) Write(ctx context.Context, menu domain.Menu, credential string) error {
	ret := _m.Called(ctx, menu, credential)
	return ret.Error(0)
}

// ValidateCredential provides a mock function with given fields: ctx, token
func (_m *RemoteSource) ValidateCredential(ctx context.Context, token string) bool {
	ret := _m.Called(ctx, token)
	return ret.Bool(0)
}

// NewRemoteSource creates a new instance of RemoteSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRemoteSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *RemoteSource {
	m := &RemoteSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
