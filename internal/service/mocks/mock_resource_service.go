package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediavault/internal/model"
	"mediavault/internal/service"
)

type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) Publish(ctx context.Context, in service.PublishResourceInput) (*model.Resource, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceService) Get(ctx context.Context, instanceID, resourceID, callerID, password string) (*model.ResourceWithOwner, error) {
	args := m.Called(ctx, instanceID, resourceID, callerID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceWithOwner), args.Error(1)
}

func (m *MockResourceService) ListByGroup(ctx context.Context, instanceID, groupID, callerID, password string, limit, offset int) (*service.ResourceListResult, error) {
	args := m.Called(ctx, instanceID, groupID, callerID, password, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResourceListResult), args.Error(1)
}

func (m *MockResourceService) UpdateTitle(ctx context.Context, instanceID, resourceID, callerID, title string) (*model.Resource, error) {
	args := m.Called(ctx, instanceID, resourceID, callerID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceService) Move(ctx context.Context, resourceID, fromGroupID, toGroupID, callerID string) (*model.Resource, error) {
	args := m.Called(ctx, resourceID, fromGroupID, toGroupID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceService) Delete(ctx context.Context, instanceID, resourceID, callerID string) error {
	args := m.Called(ctx, instanceID, resourceID, callerID)
	return args.Error(0)
}
