package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediavault/internal/access"
	"mediavault/internal/model"
	"mediavault/internal/repository"
)

// GroupListResult is the service-level DTO for paginated groups.
type GroupListResult struct {
	Items []model.Group `json:"data"`
	Total int           `json:"total"`
}

// GroupService defines the use cases for groups, including the move operation
// between instances.
type GroupService interface {
	// Create adds a group under an instance. The caller must pass the
	// instance's access policy and becomes the group's owner. Names are unique
	// within an instance.
	Create(ctx context.Context, instanceID, callerID, password, name string) (*model.Group, error)

	// Get returns the group plus its recent resources, gated by the owning
	// instance's access policy.
	Get(ctx context.Context, instanceID, groupID, callerID, password string) (*model.GroupDetail, error)

	// List returns an instance's groups, gated by the instance's access policy.
	List(ctx context.Context, instanceID, callerID, password string, limit, offset int) (*GroupListResult, error)

	// Rename rewrites the group name; group owner only.
	Rename(ctx context.Context, instanceID, groupID, callerID, name string) (*model.Group, error)

	// Move re-parents the group from one instance to another. Both instances
	// must be owned by the caller, the group must currently live under the
	// source instance, and source and destination must differ. No blobs are
	// touched; only the parent pointer is rewritten.
	Move(ctx context.Context, groupID, fromInstanceID, toInstanceID, callerID string) (*model.Group, error)

	// Delete cascades over the group's resources and removes the group record;
	// group owner only.
	Delete(ctx context.Context, instanceID, groupID, callerID string) (*CascadeSummary, error)
}

type groupService struct {
	repo      repository.GroupRepository
	instances repository.InstanceRepository
	cascader  *Cascader
}

// NewGroupService constructs a GroupService.
func NewGroupService(repo repository.GroupRepository, instances repository.InstanceRepository, cascader *Cascader) GroupService {
	return &groupService{repo: repo, instances: instances, cascader: cascader}
}

func (s *groupService) Create(ctx context.Context, instanceID, callerID, password, name string) (*model.Group, error) {
	inst, err := s.accessibleInstance(ctx, instanceID, callerID, password)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}
	exists, err := s.repo.ExistsByName(ctx, inst.ID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	g := &model.Group{
		ID:         uuid.New().String(),
		Name:       name,
		OwnerID:    callerID,
		InstanceID: inst.ID,
		CreatedAt:  time.Now().UTC(),
	}
	return s.repo.Create(ctx, g)
}

func (s *groupService) Get(ctx context.Context, instanceID, groupID, callerID, password string) (*model.GroupDetail, error) {
	if _, err := s.accessibleInstance(ctx, instanceID, callerID, password); err != nil {
		return nil, err
	}
	if err := parseID(groupID); err != nil {
		return nil, err
	}
	detail, err := s.repo.FindByIDWithResources(ctx, groupID, recentChildLimit)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if detail.InstanceID != instanceID {
		return nil, ErrNotFound
	}
	return detail, nil
}

func (s *groupService) List(ctx context.Context, instanceID, callerID, password string, limit, offset int) (*GroupListResult, error) {
	inst, err := s.accessibleInstance(ctx, instanceID, callerID, password)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.ListByInstance(ctx, inst.ID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &GroupListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *groupService) Rename(ctx context.Context, instanceID, groupID, callerID, name string) (*model.Group, error) {
	g, err := s.ownedGroup(ctx, instanceID, groupID, callerID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}
	if name != g.Name {
		exists, err := s.repo.ExistsByName(ctx, g.InstanceID, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrConflict
		}
	}
	updated, err := s.repo.UpdateName(ctx, groupID, name)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return updated, nil
}

func (s *groupService) Move(ctx context.Context, groupID, fromInstanceID, toInstanceID, callerID string) (*model.Group, error) {
	for _, id := range []string{groupID, fromInstanceID, toInstanceID} {
		if err := parseID(id); err != nil {
			return nil, err
		}
	}
	if fromInstanceID == toInstanceID {
		return nil, ErrValidation
	}

	from, err := s.instances.FindByID(ctx, fromInstanceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	to, err := s.instances.FindByID(ctx, toInstanceID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	// Both endpoints must belong to the caller. The destination's password
	// policy is irrelevant here: owner bypass would grant it anyway.
	if from.OwnerID != callerID || to.OwnerID != callerID {
		return nil, ErrUnauthorized
	}

	g, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if g.InstanceID != fromInstanceID {
		return nil, ErrValidation
	}

	exists, err := s.repo.ExistsByName(ctx, toInstanceID, g.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	if err := s.repo.UpdateInstance(ctx, groupID, toInstanceID); err != nil {
		return nil, mapNoRows(err)
	}
	moved, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return moved, nil
}

func (s *groupService) Delete(ctx context.Context, instanceID, groupID, callerID string) (*CascadeSummary, error) {
	g, err := s.ownedGroup(ctx, instanceID, groupID, callerID)
	if err != nil {
		return nil, err
	}
	return s.cascader.DeleteGroup(ctx, g)
}

// accessibleInstance resolves an instance and runs the read-access policy.
func (s *groupService) accessibleInstance(ctx context.Context, instanceID, callerID, password string) (*model.Instance, error) {
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

// ownedGroup resolves a group under an instance and verifies the caller owns
// the group. Existence is checked before ownership.
func (s *groupService) ownedGroup(ctx context.Context, instanceID, groupID, callerID string) (*model.Group, error) {
	if err := parseID(instanceID); err != nil {
		return nil, err
	}
	if err := parseID(groupID); err != nil {
		return nil, err
	}
	g, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if g.InstanceID != instanceID {
		return nil, ErrNotFound
	}
	if g.OwnerID != callerID {
		return nil, ErrUnauthorized
	}
	return g, nil
}
