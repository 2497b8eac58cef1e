package mocks

import (
	context "context"

	domain "cafe-menu/menu-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// Fetcher is a mock type for the Fetcher type
type Fetcher struct {
	mock.Mock
}

// Fetch provides a mock function with given fields: ctx
func (_m *Fetcher) Fetch(ctx context.Context) (domain.Menu, error) {
	ret := _m.Called(ctx)

	var r0 domain.Menu
	if rf, ok := ret.Get(0).(func(context.Context) domain.Menu); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Menu)
	}

	return r0, ret.Error(1)
}

// NewFetcher creates a new instance of Fetcher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewFetcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *Fetcher {
	m := &Fetcher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
