package mocks

import (
	"context"

	"mediavault/internal/model"
	"mediavault/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockInstanceRepository struct {
	mock.Mock
}

func (m *MockInstanceRepository) Create(ctx context.Context, inst *model.Instance) (*model.Instance, error) {
	args := m.Called(ctx, inst)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Instance), args.Error(1)
}

func (m *MockInstanceRepository) FindByID(ctx context.Context, id string) (*model.Instance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Instance), args.Error(1)
}

func (m *MockInstanceRepository) FindByIDWithGroups(ctx context.Context, id string, groupLimit int) (*model.InstanceDetail, error) {
	args := m.Called(ctx, id, groupLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InstanceDetail), args.Error(1)
}

func (m *MockInstanceRepository) ListByOwner(ctx context.Context, ownerID string, pq repository.PageQuery) (*repository.PageResult[model.Instance], error) {
	args := m.Called(ctx, ownerID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Instance]), args.Error(1)
}

func (m *MockInstanceRepository) Update(ctx context.Context, id, title, description string) (*model.Instance, error) {
	args := m.Called(ctx, id, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Instance), args.Error(1)
}

func (m *MockInstanceRepository) UpdateThumbnail(ctx context.Context, id string, thumb model.BlobRef) (*model.Instance, error) {
	args := m.Called(ctx, id, thumb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Instance), args.Error(1)
}

func (m *MockInstanceRepository) SetVisibility(ctx context.Context, id string, vis model.Visibility, passwordHash *string) error {
	args := m.Called(ctx, id, vis, passwordHash)
	return args.Error(0)
}

func (m *MockInstanceRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockInstanceRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
