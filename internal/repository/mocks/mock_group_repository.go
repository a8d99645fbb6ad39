package mocks

import (
	"context"

	"mediavault/internal/model"
	"mediavault/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Create(ctx context.Context, g *model.Group) (*model.Group, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepository) FindByID(ctx context.Context, id string) (*model.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepository) FindByIDWithResources(ctx context.Context, id string, resourceLimit int) (*model.GroupDetail, error) {
	args := m.Called(ctx, id, resourceLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroupDetail), args.Error(1)
}

func (m *MockGroupRepository) ExistsByName(ctx context.Context, instanceID, name string) (bool, error) {
	args := m.Called(ctx, instanceID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) ListByInstance(ctx context.Context, instanceID string, pq repository.PageQuery) (*repository.PageResult[model.Group], error) {
	args := m.Called(ctx, instanceID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Group]), args.Error(1)
}

func (m *MockGroupRepository) UpdateName(ctx context.Context, id, name string) (*model.Group, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepository) UpdateInstance(ctx context.Context, id, toInstanceID string) error {
	args := m.Called(ctx, id, toInstanceID)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) DeleteByInstance(ctx context.Context, instanceID string) (int, error) {
	args := m.Called(ctx, instanceID)
	return args.Int(0), args.Error(1)
}
