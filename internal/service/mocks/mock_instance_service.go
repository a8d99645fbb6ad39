package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"mediavault/internal/model"
	"mediavault/internal/service"
)

type MockInstanceService struct {
	mock.Mock
}

func (m *MockInstanceService) Create(ctx context.Context, in service.CreateInstanceInput) (*model.Instance, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Instance), args.Error(1)
}

func (m *MockInstanceService) Get(ctx context.Context, id, callerID, password string) (*model.InstanceDetail, error) {
	args := m.Called(ctx, id, callerID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InstanceDetail), args.Error(1)
}

func (m *MockInstanceService) List(ctx context.Context, ownerID string, limit, offset int) (*service.InstanceListResult, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InstanceListResult), args.Error(1)
}

func (m *MockInstanceService) Update(ctx context.Context, id, callerID, title, description string) (*model.Instance, error) {
	args := m.Called(ctx, id, callerID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Instance), args.Error(1)
}

func (m *MockInstanceService) ReplaceThumbnail(ctx context.Context, id, callerID string, r io.Reader, filename, contentType string, size int64) (*model.Instance, error) {
	args := m.Called(ctx, id, callerID, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Instance), args.Error(1)
}

func (m *MockInstanceService) ToggleVisibility(ctx context.Context, id, callerID, newPassword string) (*model.Instance, error) {
	args := m.Called(ctx, id, callerID, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Instance), args.Error(1)
}

func (m *MockInstanceService) ChangePassword(ctx context.Context, id, callerID, oldPassword, newPassword string) error {
	args := m.Called(ctx, id, callerID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockInstanceService) Delete(ctx context.Context, id, callerID string) (*service.CascadeSummary, error) {
	args := m.Called(ctx, id, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CascadeSummary), args.Error(1)
}
