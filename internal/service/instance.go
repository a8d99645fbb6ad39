package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediavault/internal/access"
	"mediavault/internal/model"
	"mediavault/internal/repository"
	"mediavault/internal/storage"
)

// recentChildLimit bounds the child projection returned by detail reads.
const recentChildLimit = 20

// CreateInstanceInput carries everything needed to create an instance. The
// thumbnail payload is streamed straight to the blob gateway.
type CreateInstanceInput struct {
	OwnerID     string
	Title       string
	Description string
	Visibility  model.Visibility
	Password    string
	Thumbnail   io.Reader
	ThumbName   string
	ThumbType   string
	ThumbSize   int64
}

// InstanceListResult is the service-level DTO for paginated instances.
type InstanceListResult struct {
	Items []model.Instance `json:"data"`
	Total int              `json:"total"`
}

// InstanceService defines the use cases for instances, including the
// visibility/password policy operations.
type InstanceService interface {
	// Create uploads the thumbnail, then persists the record; a failed insert
	// triggers a compensating blob delete.
	Create(ctx context.Context, in CreateInstanceInput) (*model.Instance, error)

	// Get returns the instance plus its recent groups, gated by the access
	// policy (owner bypass, public, or correct password).
	Get(ctx context.Context, id, callerID, password string) (*model.InstanceDetail, error)

	// List returns the caller's own instances.
	List(ctx context.Context, ownerID string, limit, offset int) (*InstanceListResult, error)

	// Update rewrites title and description; owner only.
	Update(ctx context.Context, id, callerID, title, description string) (*model.Instance, error)

	// ReplaceThumbnail uploads a new thumbnail and swaps the reference; the old
	// blob is removed best-effort once the record points at the new one.
	ReplaceThumbnail(ctx context.Context, id, callerID string, r io.Reader, filename, contentType string, size int64) (*model.Instance, error)

	// ToggleVisibility flips the policy. private→public clears the stored hash;
	// public→private requires a new password and is rejected without one.
	ToggleVisibility(ctx context.Context, id, callerID, newPassword string) (*model.Instance, error)

	// ChangePassword rotates the password of a private instance. It fails
	// closed: the stored hash is untouched unless the old password verifies.
	ChangePassword(ctx context.Context, id, callerID, oldPassword, newPassword string) error

	// Delete cascades over the whole subtree and reports what was removed.
	Delete(ctx context.Context, id, callerID string) (*CascadeSummary, error)
}

type instanceService struct {
	store    storage.Storage
	repo     repository.InstanceRepository
	cascader *Cascader
}

// NewInstanceService constructs an InstanceService.
func NewInstanceService(store storage.Storage, repo repository.InstanceRepository, cascader *Cascader) InstanceService {
	return &instanceService{store: store, repo: repo, cascader: cascader}
}

func (s *instanceService) Create(ctx context.Context, in CreateInstanceInput) (*model.Instance, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrValidation
	}
	if in.Visibility != model.VisibilityPublic && in.Visibility != model.VisibilityPrivate {
		return nil, ErrValidation
	}

	var hash string
	if in.Visibility == model.VisibilityPrivate {
		if strings.TrimSpace(in.Password) == "" {
			return nil, ErrValidation
		}
		var err error
		hash, err = access.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
	}

	thumb, err := putBlob(ctx, s.store, "thumbnails", in.Thumbnail, in.ThumbName, in.ThumbType, in.ThumbSize)
	if err != nil {
		return nil, err
	}

	inst := &model.Instance{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Thumbnail:    thumb,
		Visibility:   in.Visibility,
		PasswordHash: hash,
		OwnerID:      in.OwnerID,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, inst)
	if err != nil {
		return nil, dropBlob(ctx, s.store, thumb.PublicID, err)
	}
	return stored, nil
}

func (s *instanceService) Get(ctx context.Context, id, callerID, password string) (*model.InstanceDetail, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	inst, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if err := access.Authorize(inst, callerID, password); err != nil {
		return nil, err
	}
	detail, err := s.repo.FindByIDWithGroups(ctx, id, recentChildLimit)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return detail, nil
}

func (s *instanceService) List(ctx context.Context, ownerID string, limit, offset int) (*InstanceListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.ListByOwner(ctx, ownerID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &InstanceListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *instanceService) Update(ctx context.Context, id, callerID, title, description string) (*model.Instance, error) {
	inst, err := s.ownedInstance(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = inst.Title
	}
	updated, err := s.repo.Update(ctx, id, strings.TrimSpace(title), description)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return updated, nil
}

func (s *instanceService) ReplaceThumbnail(ctx context.Context, id, callerID string, r io.Reader, filename, contentType string, size int64) (*model.Instance, error) {
	inst, err := s.ownedInstance(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	thumb, err := putBlob(ctx, s.store, "thumbnails", r, filename, contentType, size)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateThumbnail(ctx, id, thumb)
	if err != nil {
		return nil, dropBlob(ctx, s.store, thumb.PublicID, err)
	}
	// The record now points at the new blob; the old one is unreachable.
	if inst.Thumbnail.PublicID != "" {
		_ = s.store.Delete(ctx, inst.Thumbnail.PublicID)
	}
	return updated, nil
}

func (s *instanceService) ToggleVisibility(ctx context.Context, id, callerID, newPassword string) (*model.Instance, error) {
	inst, err := s.ownedInstance(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	switch inst.Visibility {
	case model.VisibilityPrivate:
		// Going public clears the stored hash.
		if err := s.repo.SetVisibility(ctx, id, model.VisibilityPublic, nil); err != nil {
			return nil, mapNoRows(err)
		}
	case model.VisibilityPublic:
		if strings.TrimSpace(newPassword) == "" {
			return nil, ErrValidation
		}
		hash, err := access.HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetVisibility(ctx, id, model.VisibilityPrivate, &hash); err != nil {
			return nil, mapNoRows(err)
		}
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return updated, nil
}

func (s *instanceService) ChangePassword(ctx context.Context, id, callerID, oldPassword, newPassword string) error {
	inst, err := s.ownedInstance(ctx, id, callerID)
	if err != nil {
		return err
	}
	if inst.Visibility != model.VisibilityPrivate {
		return ErrValidation
	}
	if strings.TrimSpace(newPassword) == "" {
		return ErrValidation
	}
	// Fail closed: the stored hash stays untouched unless the old password
	// verifies.
	if !access.VerifyPassword(inst.PasswordHash, oldPassword) {
		return access.ErrPasswordInvalid
	}
	hash, err := access.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return mapNoRows(s.repo.SetPasswordHash(ctx, id, hash))
}

func (s *instanceService) Delete(ctx context.Context, id, callerID string) (*CascadeSummary, error) {
	inst, err := s.ownedInstance(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	return s.cascader.DeleteInstance(ctx, inst)
}

// ownedInstance resolves an instance and verifies the caller owns it.
// Existence is checked before ownership, so a vanished instance reports
// NotFound rather than Unauthorized.
func (s *instanceService) ownedInstance(ctx context.Context, id, callerID string) (*model.Instance, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	inst, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if inst.OwnerID != callerID {
		return nil, ErrUnauthorized
	}
	return inst, nil
}
