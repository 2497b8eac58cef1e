package mocks

import (
	context "context"

	domain "cafe-menu/menu-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// MenuLoaderInterface is a mock type for the MenuLoaderInterface type
type MenuLoaderInterface struct {
	mock.Mock
}

// Load provides a mock function with given fields: ctx
func (_m *MenuLoaderInterface) Load(ctx context.Context) domain.Menu {
	ret := _m.Called(ctx)

	var r0 domain.Menu
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Menu)
	}
	return r0
}

// Refresh provides a mock function with given fields: ctx
func (_m *MenuLoaderInterface) Refresh(ctx context.Context) domain.Menu {
	ret := _m.Called(ctx)

	var r0 domain.Menu
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Menu)
	}
	return r0
}

// Stored provides a mock function with given fields: ctx
func (_m *MenuLoaderInterface) Stored(ctx context.Context) (domain.Menu, error) {
	ret := _m.Called(ctx)

	var r0 domain.Menu
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Menu)
	}
	return r0, ret.Error(1)
}

// NewMenuLoaderInterface creates a new instance of MenuLoaderInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMenuLoaderInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuLoaderInterface {
	m := &MenuLoaderInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
