package mocks

import (
	context "context"

	domain "cafe-menu/menu-svc/internal/domain"
	service "cafe-menu/menu-svc/internal/service"

	mock "github.com/stretchr/testify/mock"
)

// MutatorInterface is a mock type for the MutatorInterface type
type MutatorInterface struct {
	mock.Mock
}

// Reload provides a mock function with given fields: ctx, load
func (_m *MutatorInterface) Reload(ctx context.Context, load func(context.Context) (domain.Menu, error)) error {
	ret := _m.Called(ctx, load)

	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context) (domain.Menu, error)) error); ok {
		return rf(ctx, load)
	}
	return ret.Error(0)
}

// AddCategory provides a mock function with given fields: ctx, in
func (_m *MutatorInterface) AddCategory(ctx context.Context, in service.CategoryInput) (domain.Category, service.SaveResult, error) {
	ret := _m.Called(ctx, in)
	return ret.Get(0).(domain.Category), ret.Get(1).(service.SaveResult), ret.Error(2)
}

// RemoveCategory provides a mock function with given fields: ctx, id
func (_m *MutatorInterface) RemoveCategory(ctx context.Context, id string) (service.SaveResult, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(service.SaveResult), ret.Error(1)
}

// UpsertProduct provides a mock function with given fields: ctx, in
func (_m *MutatorInterface) UpsertProduct(ctx context.Context, in service.ProductInput) (domain.Item, service.SaveResult, error) {
	ret := _m.Called(ctx, in)
	return ret.Get(0).(domain.Item), ret.Get(1).(service.SaveResult), ret.Error(2)
}

// SetProductImage provides a mock function with given fields: ctx, categoryID, itemID, src
func (_m *MutatorInterface) SetProductImage(ctx context.Context, categoryID string, itemID string, src string) (service.SaveResult, error) {
	ret := _m.Called(ctx, categoryID, itemID, src)
	return ret.Get(0).(service.SaveResult), ret.Error(1)
}

// RemoveProduct provides a mock function with given fields: ctx, categoryID, itemID
func (_m *MutatorInterface) RemoveProduct(ctx context.Context, categoryID string, itemID string) (service.SaveResult, error) {
	ret := _m.Called(ctx, categoryID, itemID)
	return ret.Get(0).(service.SaveResult), ret.Error(1)
}

// ApplyCategoryDiscount provides a mock function with given fields: ctx, categoryID, percent
func (_m *MutatorInterface) ApplyCategoryDiscount(ctx context.Context, categoryID string, percent int) (service.SaveResult, error) {
	ret := _m.Called(ctx, categoryID, percent)
	return ret.Get(0).(service.SaveResult), ret.Error(1)
}

// ApplyGlobalDiscount provides a mock function with given fields: ctx, percent
func (_m *MutatorInterface) ApplyGlobalDiscount(ctx context.Context, percent int) (service.SaveResult, error) {
	ret := _m.Called(ctx, percent)
	return ret.Get(0).(service.SaveResult), ret.Error(1)
}

// ClearDiscounts provides a mock function with given fields: ctx
func (_m *MutatorInterface) ClearDiscounts(ctx context.Context) (service.SaveResult, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.SaveResult), ret.Error(1)
}

// NewMutatorInterface creates a new instance of MutatorInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMutatorInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MutatorInterface {
	m := &MutatorInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
