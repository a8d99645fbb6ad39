package mocks

import (
	"context"

	"mediavault/internal/model"
	"mediavault/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByInstance(ctx context.Context, instanceID string, pq repository.PageQuery) (*repository.PageResult[model.CommentWithAuthor], error) {
	args := m.Called(ctx, instanceID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.CommentWithAuthor]), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id, content string) (*model.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) DeleteByInstance(ctx context.Context, instanceID string) (int, error) {
	args := m.Called(ctx, instanceID)
	return args.Int(0), args.Error(1)
}
