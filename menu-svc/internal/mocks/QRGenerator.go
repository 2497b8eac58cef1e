package mocks

import (
	mock "github.com/stretchr/testify/mock"
)

// QRGenerator is a mock type for the QRGenerator type
type QRGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: categoryID
func (_m *QRGenerator) Generate(categoryID string) ([]byte, error) {
	ret := _m.Called(categoryID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// Link provides a mock function with given fields: categoryID
func (_m *QRGenerator) Link(categoryID string) string {
	ret := _m.Called(categoryID)
	return ret.String(0)
}

// NewQRGenerator creates a new instance of QRGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewQRGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
