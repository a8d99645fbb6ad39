package mocks

import (
	"context"

	"mediavault/internal/model"
	"mediavault/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, r *model.Resource) (*model.Resource, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceRepository) FindByID(ctx context.Context, id string) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceRepository) FindByIDWithOwner(ctx context.Context, id string) (*model.ResourceWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceWithOwner), args.Error(1)
}

func (m *MockResourceRepository) ListByGroup(ctx context.Context, groupID string, pq repository.PageQuery) (*repository.PageResult[model.Resource], error) {
	args := m.Called(ctx, groupID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Resource]), args.Error(1)
}

func (m *MockResourceRepository) UpdateTitle(ctx context.Context, id, title string) (*model.Resource, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceRepository) UpdateGroup(ctx context.Context, id, toGroupID string) error {
	args := m.Called(ctx, id, toGroupID)
	return args.Error(0)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceRepository) ListBlobsByGroup(ctx context.Context, groupID string) ([]repository.BlobPointer, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BlobPointer), args.Error(1)
}

func (m *MockResourceRepository) ListBlobsByInstance(ctx context.Context, instanceID string) ([]repository.BlobPointer, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BlobPointer), args.Error(1)
}

func (m *MockResourceRepository) DeleteByGroup(ctx context.Context, groupID string) (map[model.ResourceKind]int, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ResourceKind]int), args.Error(1)
}

func (m *MockResourceRepository) DeleteByInstance(ctx context.Context, instanceID string) (map[model.ResourceKind]int, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ResourceKind]int), args.Error(1)
}
