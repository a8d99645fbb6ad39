package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mediavault/internal/access"
	"mediavault/internal/model"
	repoMocks "mediavault/internal/repository/mocks"
)

const testCommentID = "8b9c0d1e-2f3a-4b4c-8d5e-6f7a8b9c0d1e"

func testComment(authorID string) *model.Comment {
	return &model.Comment{
		ID:         testCommentID,
		Content:    "nice shot",
		InstanceID: testInstanceID,
		AuthorID:   authorID,
	}
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		callerID   string
		password   string
		content    string
		setupMocks func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository)
		wantErr    error
	}{
		{
			name:     "any caller passing the access policy may comment",
			callerID: testOtherID,
			content:  "nice shot",
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mComment.On("Create", ctx, mock.MatchedBy(func(c *model.Comment) bool {
					return c.Content == "nice shot" && c.AuthorID == testOtherID && !c.Edited
				})).Return(testComment(testOtherID), nil)
			},
		},
		{
			name:     "private instance gates commenting too",
			callerID: testOtherID,
			content:  "nice shot",
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				hash, _ := access.HashPassword("hunter22")
				mInst.On("FindByID", ctx, testInstanceID).Return(&model.Instance{
					ID: testInstanceID, OwnerID: testOwnerID,
					Visibility: model.VisibilityPrivate, PasswordHash: hash,
				}, nil)
			},
			wantErr: access.ErrPasswordRequired,
		},
		{
			name:     "blank content rejected",
			callerID: testOtherID,
			content:  "   ",
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
			},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mComment := new(repoMocks.MockCommentRepository)
			mInst := new(repoMocks.MockInstanceRepository)
			svc := NewCommentService(mComment, mInst)

			tt.setupMocks(mComment, mInst)

			c, err := svc.Create(ctx, testInstanceID, tt.callerID, tt.password, tt.content)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, c)
			}
			mComment.AssertExpectations(t)
			mInst.AssertExpectations(t)
		})
	}
}

func TestCommentService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		callerID   string
		setupMocks func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository)
		wantErr    error
	}{
		{
			name:     "author edit sets the edited flag",
			callerID: testOtherID,
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mComment.On("FindByID", ctx, testCommentID).Return(testComment(testOtherID), nil)
				mComment.On("UpdateContent", ctx, testCommentID, "better shot").
					Return(&model.Comment{ID: testCommentID, Content: "better shot", Edited: true}, nil)
			},
		},
		{
			name:     "instance owner may not edit someone else's comment",
			callerID: testOwnerID,
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mComment.On("FindByID", ctx, testCommentID).Return(testComment(testOtherID), nil)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name:     "cascaded instance yields not found",
			callerID: testOtherID,
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mComment := new(repoMocks.MockCommentRepository)
			mInst := new(repoMocks.MockInstanceRepository)
			svc := NewCommentService(mComment, mInst)

			tt.setupMocks(mComment, mInst)

			c, err := svc.Update(ctx, testInstanceID, testCommentID, tt.callerID, "better shot")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.True(t, c.Edited)
			}
			mComment.AssertExpectations(t)
			mInst.AssertExpectations(t)
		})
	}
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		callerID   string
		setupMocks func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository)
		wantErr    error
	}{
		{
			name:     "author may delete",
			callerID: testOtherID,
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mComment.On("FindByID", ctx, testCommentID).Return(testComment(testOtherID), nil)
				mComment.On("Delete", ctx, testCommentID).Return(true, nil)
			},
		},
		{
			name:     "instance owner may moderate",
			callerID: testOwnerID,
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mComment.On("FindByID", ctx, testCommentID).Return(testComment(testOtherID), nil)
				mComment.On("Delete", ctx, testCommentID).Return(true, nil)
			},
		},
		{
			name:     "unrelated caller rejected",
			callerID: "6a7b8c9d-0e1f-4a2b-8c3d-4e5f6a7b8c9d",
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mComment.On("FindByID", ctx, testCommentID).Return(testComment(testOtherID), nil)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name:     "concurrent delete reports not found",
			callerID: testOtherID,
			setupMocks: func(mComment *repoMocks.MockCommentRepository, mInst *repoMocks.MockInstanceRepository) {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mComment.On("FindByID", ctx, testCommentID).Return(testComment(testOtherID), nil)
				mComment.On("Delete", ctx, testCommentID).Return(false, nil)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mComment := new(repoMocks.MockCommentRepository)
			mInst := new(repoMocks.MockInstanceRepository)
			svc := NewCommentService(mComment, mInst)

			tt.setupMocks(mComment, mInst)

			err := svc.Delete(ctx, testInstanceID, testCommentID, tt.callerID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mComment.AssertExpectations(t)
			mInst.AssertExpectations(t)
		})
	}
}
