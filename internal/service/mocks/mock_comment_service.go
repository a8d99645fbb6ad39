package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediavault/internal/model"
	"mediavault/internal/service"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) List(ctx context.Context, instanceID, callerID, password string, limit, offset int) (*service.CommentListResult, error) {
	args := m.Called(ctx, instanceID, callerID, password, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommentListResult), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, instanceID, callerID, password, content string) (*model.Comment, error) {
	args := m.Called(ctx, instanceID, callerID, password, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, instanceID, commentID, callerID, content string) (*model.Comment, error) {
	args := m.Called(ctx, instanceID, commentID, callerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, instanceID, commentID, callerID string) error {
	args := m.Called(ctx, instanceID, commentID, callerID)
	return args.Error(0)
}
