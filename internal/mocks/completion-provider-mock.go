package mocks

import (
	"context"
	"github.com/iamvkosarev/prompt-form/internal/model"
	"github.com/iamvkosarev/prompt-form/internal/usecase"
	"github.com/stretchr/testify/mock"
)

// MockCompletionProvider is a mock type for the CompletionProvider type
type MockCompletionProvider struct {
	mock.Mock
}

// Complete provides a mock function with given fields: ctx, req
func (_m *MockCompletionProvider) Complete(ctx context.Context, req model.GenerationRequest) (*string, error) {
	ret := _m.Called(ctx, req)

	var r0 *string
	if rf, ok := ret.Get(0).(func(context.Context, model.GenerationRequest) *string); ok {
		r0 = rf(ctx, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*string)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, model.GenerationRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockCompletionProvider creates a new instance of MockCompletionProvider. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCompletionProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCompletionProvider {
	m := &MockCompletionProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ usecase.CompletionProvider = (*MockCompletionProvider)(nil)
