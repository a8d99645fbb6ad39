package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediavault/internal/access"
	"mediavault/internal/model"
	"mediavault/internal/repository"
	"mediavault/internal/storage"
)

// PublishResourceInput carries everything needed to publish a resource into a
// group. The payload is streamed straight to the blob gateway.
type PublishResourceInput struct {
	InstanceID string
	GroupID    string
	CallerID   string
	Password   string
	Kind       model.ResourceKind
	Title      string
	File       io.Reader
	Filename   string
	FileType   string
	FileSize   int64
}

// ResourceListResult is the service-level DTO for paginated resources.
type ResourceListResult struct {
	Items []model.Resource `json:"data"`
	Total int              `json:"total"`
}

// ResourceService defines the use cases for resources of every kind.
type ResourceService interface {
	// Publish uploads the payload to the blob gateway under its kind's prefix,
	// then persists the record; a failed insert triggers a compensating blob
	// delete so no record ever points at a missing blob and no blob outlives a
	// failed record.
	Publish(ctx context.Context, in PublishResourceInput) (*model.Resource, error)

	// Get returns a resource enriched with its owner projection, gated by the
	// owning instance's access policy.
	Get(ctx context.Context, instanceID, resourceID, callerID, password string) (*model.ResourceWithOwner, error)

	// ListByGroup returns a group's resources, gated by the instance policy.
	ListByGroup(ctx context.Context, instanceID, groupID, callerID, password string, limit, offset int) (*ResourceListResult, error)

	// UpdateTitle rewrites the title; resource owner or instance owner.
	UpdateTitle(ctx context.Context, instanceID, resourceID, callerID, title string) (*model.Resource, error)

	// Move re-parents a resource between groups. The resource must currently
	// live under fromGroupID, the target group must exist, and the caller must
	// own the resource or the instance.
	Move(ctx context.Context, resourceID, fromGroupID, toGroupID, callerID string) (*model.Resource, error)

	// Delete removes the blob first, then the record. A failed blob delete
	// keeps the record so its blob-ref stays valid.
	Delete(ctx context.Context, instanceID, resourceID, callerID string) error
}

type resourceService struct {
	store     storage.Storage
	repo      repository.ResourceRepository
	groups    repository.GroupRepository
	instances repository.InstanceRepository
}

// NewResourceService constructs a ResourceService.
func NewResourceService(store storage.Storage, repo repository.ResourceRepository, groups repository.GroupRepository, instances repository.InstanceRepository) ResourceService {
	return &resourceService{store: store, repo: repo, groups: groups, instances: instances}
}

func (s *resourceService) Publish(ctx context.Context, in PublishResourceInput) (*model.Resource, error) {
	inst, err := s.accessibleInstance(ctx, in.InstanceID, in.CallerID, in.Password)
	if err != nil {
		return nil, err
	}
	if err := parseID(in.GroupID); err != nil {
		return nil, err
	}
	g, err := s.groups.FindByID(ctx, in.GroupID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if g.InstanceID != inst.ID {
		return nil, ErrNotFound
	}
	if _, err := model.ParseResourceKind(string(in.Kind)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrValidation
	}

	blob, err := putBlob(ctx, s.store, in.Kind.StoragePrefix(), in.File, in.Filename, in.FileType, in.FileSize)
	if err != nil {
		return nil, err
	}

	res := &model.Resource{
		ID:        uuid.New().String(),
		Kind:      in.Kind,
		Title:     strings.TrimSpace(in.Title),
		OwnerID:   in.CallerID,
		GroupID:   in.GroupID,
		Blob:      blob,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, res)
	if err != nil {
		return nil, dropBlob(ctx, s.store, blob.PublicID, err)
	}
	return stored, nil
}

func (s *resourceService) Get(ctx context.Context, instanceID, resourceID, callerID, password string) (*model.ResourceWithOwner, error) {
	if _, err := s.accessibleInstance(ctx, instanceID, callerID, password); err != nil {
		return nil, err
	}
	if err := parseID(resourceID); err != nil {
		return nil, err
	}
	res, err := s.repo.FindByIDWithOwner(ctx, resourceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return res, nil
}

func (s *resourceService) ListByGroup(ctx context.Context, instanceID, groupID, callerID, password string, limit, offset int) (*ResourceListResult, error) {
	if _, err := s.accessibleInstance(ctx, instanceID, callerID, password); err != nil {
		return nil, err
	}
	if err := parseID(groupID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.ListByGroup(ctx, groupID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ResourceListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *resourceService) UpdateTitle(ctx context.Context, instanceID, resourceID, callerID, title string) (*model.Resource, error) {
	res, err := s.mutableResource(ctx, instanceID, resourceID, callerID)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrValidation
	}
	updated, err := s.repo.UpdateTitle(ctx, res.ID, title)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return updated, nil
}

func (s *resourceService) Move(ctx context.Context, resourceID, fromGroupID, toGroupID, callerID string) (*model.Resource, error) {
	for _, id := range []string{resourceID, fromGroupID, toGroupID} {
		if err := parseID(id); err != nil {
			return nil, err
		}
	}
	if fromGroupID == toGroupID {
		return nil, ErrValidation
	}

	res, err := s.repo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if res.GroupID != fromGroupID {
		return nil, ErrValidation
	}
	target, err := s.groups.FindByID(ctx, toGroupID)
	if err != nil {
		return nil, mapNoRows(err)
	}

	inst, err := s.instances.FindByID(ctx, target.InstanceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if res.OwnerID != callerID && inst.OwnerID != callerID {
		return nil, ErrUnauthorized
	}

	if err := s.repo.UpdateGroup(ctx, resourceID, toGroupID); err != nil {
		return nil, mapNoRows(err)
	}
	moved, err := s.repo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return moved, nil
}

func (s *resourceService) Delete(ctx context.Context, instanceID, resourceID, callerID string) error {
	res, err := s.mutableResource(ctx, instanceID, resourceID, callerID)
	if err != nil {
		return err
	}
	// Blob first: if this fails the record survives with a still-valid ref.
	if err := s.store.Delete(ctx, res.Blob.PublicID); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if _, err := s.repo.Delete(ctx, res.ID); err != nil {
		return err
	}
	return nil
}

// accessibleInstance resolves an instance and runs the read-access policy.
func (s *resourceService) accessibleInstance(ctx context.Context, instanceID, callerID, password string) (*model.Instance, error) {
	if err := parseID(instanceID); err != nil {
		return nil, err
	}
	inst, err := s.instances.FindByID(ctx, instanceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if err := access.Authorize(inst, callerID, password); err != nil {
		return nil, err
	}
	return inst, nil
}

// mutableResource resolves a resource and verifies the caller may mutate it:
// the resource owner or the owning instance's owner.
func (s *resourceService) mutableResource(ctx context.Context, instanceID, resourceID, callerID string) (*model.Resource, error) {
	if err := parseID(instanceID); err != nil {
		return nil, err
	}
	if err := parseID(resourceID); err != nil {
		return nil, err
	}
	res, err := s.repo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	g, err := s.groups.FindByID(ctx, res.GroupID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if g.InstanceID != instanceID {
		return nil, ErrNotFound
	}
	inst, err := s.instances.FindByID(ctx, instanceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if res.OwnerID != callerID && inst.OwnerID != callerID {
		return nil, ErrUnauthorized
	}
	return res, nil
}
