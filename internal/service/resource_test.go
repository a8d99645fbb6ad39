package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mediavault/internal/model"
	repoMocks "mediavault/internal/repository/mocks"
	"mediavault/internal/storage"
	storeMocks "mediavault/internal/storage/mocks"
)

const testGroupID2 = "4d5e6f7a-8b9c-4d0e-9f1a-2b3c4d5e6f7a"

func testResource(ownerID string) *model.Resource {
	return &model.Resource{
		ID:      testResourceID,
		Kind:    model.KindImage,
		Title:   "Sunset",
		OwnerID: ownerID,
		GroupID: testGroupID,
		Blob:    model.BlobRef{PublicID: "images/sunset.png", URL: "http://store/images/sunset.png"},
	}
}

func TestResourceService_Publish(t *testing.T) {
	ctx := context.Background()

	baseInput := func() PublishResourceInput {
		return PublishResourceInput{
			InstanceID: testInstanceID,
			GroupID:    testGroupID,
			CallerID:   testOtherID,
			Kind:       model.KindVideo,
			Title:      "Clip",
			Filename:   "clip.mp4",
			FileType:   "video/mp4",
			FileSize:   4,
		}
	}

	tests := []struct {
		name       string
		mutate     func(in *PublishResourceInput)
		setupMocks func(mStore *storeMocks.MockStorage, mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name:   "happy path stores under the kind prefix",
			mutate: func(in *PublishResourceInput) {},
			setupMocks: func(mStore *storeMocks.MockStorage, mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) io.Reader {
				r := strings.NewReader("data")
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mGroup.On("FindByID", ctx, testGroupID).
					Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID, OwnerID: testOwnerID}, nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "videos/") && strings.HasSuffix(key, ".mp4")
				}), r, mock.Anything).Return(storage.ObjectInfo{Key: "videos/uuid.mp4"}, nil)
				mStore.On("ObjectURL", "videos/uuid.mp4").Return("http://store/videos/uuid.mp4")
				mRes.On("Create", ctx, mock.MatchedBy(func(res *model.Resource) bool {
					return res.Kind == model.KindVideo &&
						res.OwnerID == testOtherID &&
						res.GroupID == testGroupID &&
						res.Blob.PublicID == "videos/uuid.mp4"
				})).Return(&model.Resource{ID: testResourceID}, nil)
				return r
			},
		},
		{
			name: "group under a different instance",
			mutate: func(in *PublishResourceInput) {
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) io.Reader {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mGroup.On("FindByID", ctx, testGroupID).
					Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID2, OwnerID: testOwnerID}, nil)
				return strings.NewReader("data")
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "blank title rejected",
			mutate: func(in *PublishResourceInput) { in.Title = "  " },
			setupMocks: func(mStore *storeMocks.MockStorage, mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) io.Reader {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mGroup.On("FindByID", ctx, testGroupID).
					Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID, OwnerID: testOwnerID}, nil)
				return strings.NewReader("data")
			},
			wantErr: ErrValidation,
		},
		{
			name:   "unknown kind rejected",
			mutate: func(in *PublishResourceInput) { in.Kind = model.ResourceKind("gif") },
			setupMocks: func(mStore *storeMocks.MockStorage, mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) io.Reader {
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mGroup.On("FindByID", ctx, testGroupID).
					Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID, OwnerID: testOwnerID}, nil)
				return strings.NewReader("data")
			},
			wantErr: ErrValidation,
		},
		{
			name:   "repository error rolls back the blob",
			mutate: func(in *PublishResourceInput) {},
			setupMocks: func(mStore *storeMocks.MockStorage, mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) io.Reader {
				r := strings.NewReader("data")
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mGroup.On("FindByID", ctx, testGroupID).
					Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID, OwnerID: testOwnerID}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "videos/uuid.mp4"}, nil)
				mStore.On("ObjectURL", mock.Anything).Return("http://store/x")
				mRes.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "videos/uuid.mp4").Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRes := new(repoMocks.MockResourceRepository)
			mGroup := new(repoMocks.MockGroupRepository)
			mInst := new(repoMocks.MockInstanceRepository)
			svc := NewResourceService(mStore, mRes, mGroup, mInst)

			in := baseInput()
			tt.mutate(&in)
			in.File = tt.setupMocks(mStore, mRes, mGroup, mInst)

			res, err := svc.Publish(ctx, in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, res)
			}
			mStore.AssertExpectations(t)
			mRes.AssertExpectations(t)
			mGroup.AssertExpectations(t)
			mInst.AssertExpectations(t)
		})
	}
}

func TestResourceService_UpdateTitle(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		callerID   string
		setupMocks func(mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository)
		wantErr    error
	}{
		{
			name:     "resource owner may edit",
			callerID: testOtherID,
			setupMocks: func(mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) {
				mRes.On("FindByID", ctx, testResourceID).Return(testResource(testOtherID), nil)
				mGroup.On("FindByID", ctx, testGroupID).
					Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID}, nil)
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mRes.On("UpdateTitle", ctx, testResourceID, "Dawn").
					Return(&model.Resource{ID: testResourceID, Title: "Dawn"}, nil)
			},
		},
		{
			name:     "instance owner may edit someone else's resource",
			callerID: testOwnerID,
			setupMocks: func(mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) {
				mRes.On("FindByID", ctx, testResourceID).Return(testResource(testOtherID), nil)
				mGroup.On("FindByID", ctx, testGroupID).
					Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID}, nil)
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
				mRes.On("UpdateTitle", ctx, testResourceID, "Dawn").
					Return(&model.Resource{ID: testResourceID, Title: "Dawn"}, nil)
			},
		},
		{
			name:     "unrelated caller rejected",
			callerID: "6a7b8c9d-0e1f-4a2b-8c3d-4e5f6a7b8c9d",
			setupMocks: func(mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) {
				mRes.On("FindByID", ctx, testResourceID).Return(testResource(testOtherID), nil)
				mGroup.On("FindByID", ctx, testGroupID).
					Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID}, nil)
				mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name:     "missing resource",
			callerID: testOwnerID,
			setupMocks: func(mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) {
				mRes.On("FindByID", ctx, testResourceID).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRes := new(repoMocks.MockResourceRepository)
			mGroup := new(repoMocks.MockGroupRepository)
			mInst := new(repoMocks.MockInstanceRepository)
			svc := NewResourceService(nil, mRes, mGroup, mInst)

			tt.setupMocks(mRes, mGroup, mInst)

			res, err := svc.UpdateTitle(ctx, testInstanceID, testResourceID, tt.callerID, "Dawn")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Dawn", res.Title)
			}
			mRes.AssertExpectations(t)
			mGroup.AssertExpectations(t)
			mInst.AssertExpectations(t)
		})
	}
}

func TestResourceService_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRes := new(repoMocks.MockResourceRepository)
		mGroup := new(repoMocks.MockGroupRepository)
		mInst := new(repoMocks.MockInstanceRepository)
		svc := NewResourceService(nil, mRes, mGroup, mInst)

		mRes.On("FindByID", ctx, testResourceID).Return(testResource(testOtherID), nil).Once()
		mGroup.On("FindByID", ctx, testGroupID2).
			Return(&model.Group{ID: testGroupID2, InstanceID: testInstanceID}, nil)
		mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
		mRes.On("UpdateGroup", ctx, testResourceID, testGroupID2).Return(nil)
		moved := testResource(testOtherID)
		moved.GroupID = testGroupID2
		mRes.On("FindByID", ctx, testResourceID).Return(moved, nil).Once()

		res, err := svc.Move(ctx, testResourceID, testGroupID, testGroupID2, testOtherID)

		assert.NoError(t, err)
		assert.Equal(t, testGroupID2, res.GroupID)
		mRes.AssertExpectations(t)
		mGroup.AssertExpectations(t)
	})

	t.Run("resource not in the source group", func(t *testing.T) {
		mRes := new(repoMocks.MockResourceRepository)
		mGroup := new(repoMocks.MockGroupRepository)
		mInst := new(repoMocks.MockInstanceRepository)
		svc := NewResourceService(nil, mRes, mGroup, mInst)

		mRes.On("FindByID", ctx, testResourceID).Return(testResource(testOtherID), nil)

		_, err := svc.Move(ctx, testResourceID, testGroupID2, testGroupID, testOtherID)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("target group missing", func(t *testing.T) {
		mRes := new(repoMocks.MockResourceRepository)
		mGroup := new(repoMocks.MockGroupRepository)
		mInst := new(repoMocks.MockInstanceRepository)
		svc := NewResourceService(nil, mRes, mGroup, mInst)

		mRes.On("FindByID", ctx, testResourceID).Return(testResource(testOtherID), nil)
		mGroup.On("FindByID", ctx, testGroupID2).Return(nil, sql.ErrNoRows)

		_, err := svc.Move(ctx, testResourceID, testGroupID, testGroupID2, testOtherID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestResourceService_Delete(t *testing.T) {
	ctx := context.Background()

	setup := func(mRes *repoMocks.MockResourceRepository, mGroup *repoMocks.MockGroupRepository, mInst *repoMocks.MockInstanceRepository) {
		mRes.On("FindByID", ctx, testResourceID).Return(testResource(testOtherID), nil)
		mGroup.On("FindByID", ctx, testGroupID).
			Return(&model.Group{ID: testGroupID, InstanceID: testInstanceID}, nil)
		mInst.On("FindByID", ctx, testInstanceID).Return(publicInstance(testInstanceID, testOwnerID), nil)
	}

	t.Run("blob then record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRes := new(repoMocks.MockResourceRepository)
		mGroup := new(repoMocks.MockGroupRepository)
		mInst := new(repoMocks.MockInstanceRepository)
		svc := NewResourceService(mStore, mRes, mGroup, mInst)

		setup(mRes, mGroup, mInst)
		mStore.On("Delete", ctx, "images/sunset.png").Return(nil)
		mRes.On("Delete", ctx, testResourceID).Return(true, nil)

		err := svc.Delete(ctx, testInstanceID, testResourceID, testOtherID)
		assert.NoError(t, err)
		mStore.AssertExpectations(t)
		mRes.AssertExpectations(t)
	})

	t.Run("failed blob delete keeps the record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRes := new(repoMocks.MockResourceRepository)
		mGroup := new(repoMocks.MockGroupRepository)
		mInst := new(repoMocks.MockInstanceRepository)
		svc := NewResourceService(mStore, mRes, mGroup, mInst)

		setup(mRes, mGroup, mInst)
		mStore.On("Delete", ctx, "images/sunset.png").Return(errors.New("gateway down"))

		err := svc.Delete(ctx, testInstanceID, testResourceID, testOtherID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "delete storage")
		mRes.AssertNotCalled(t, "Delete", ctx, testResourceID)
	})
}
