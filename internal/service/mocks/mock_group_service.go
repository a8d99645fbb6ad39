package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediavault/internal/model"
	"mediavault/internal/service"
)

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) Create(ctx context.Context, instanceID, callerID, password, name string) (*model.Group, error) {
	args := m.Called(ctx, instanceID, callerID, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupService) Get(ctx context.Context, instanceID, groupID, callerID, password string) (*model.GroupDetail, error) {
	args := m.Called(ctx, instanceID, groupID, callerID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroupDetail), args.Error(1)
}

func (m *MockGroupService) List(ctx context.Context, instanceID, callerID, password string, limit, offset int) (*service.GroupListResult, error) {
	args := m.Called(ctx, instanceID, callerID, password, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GroupListResult), args.Error(1)
}

func (m *MockGroupService) Rename(ctx context.Context, instanceID, groupID, callerID, name string) (*model.Group, error) {
	args := m.Called(ctx, instanceID, groupID, callerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupService) Move(ctx context.Context, groupID, fromInstanceID, toInstanceID, callerID string) (*model.Group, error) {
	args := m.Called(ctx, groupID, fromInstanceID, toInstanceID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupService) Delete(ctx context.Context, instanceID, groupID, callerID string) (*service.CascadeSummary, error) {
	args := m.Called(ctx, instanceID, groupID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CascadeSummary), args.Error(1)
}
