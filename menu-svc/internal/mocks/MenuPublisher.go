package mocks

import (
	context "context"

	domain "cafe-menu/menu-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// MenuPublisher is a mock type for the MenuPublisher type
type MenuPublisher struct {
	mock.Mock
}

// PublishMenuEvent provides a mock function with given fields: ctx, event
func (_m *MenuPublisher) PublishMenuEvent(ctx context.Context, event domain.MenuEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// NewMenuPublisher creates a new instance of MenuPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMenuPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuPublisher {
	m := &MenuPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
