package repository

import (
	"context"

	"mediavault/internal/model"
)

// BlobPointer identifies one stored blob during a cascade: the gateway key
// plus the kind tag it was stored under.
type BlobPointer struct {
	Kind     model.ResourceKind
	PublicID string
}

// ResourceRepository defines persistence for resources of every kind. The kind
// lives in a discriminant column; there is one table, not one per kind.
type ResourceRepository interface {
	// Create inserts a new resource row and returns the stored record.
	Create(ctx context.Context, r *model.Resource) (*model.Resource, error)

	// FindByID returns a resource by its ID.
	FindByID(ctx context.Context, id string) (*model.Resource, error)

	// FindByIDWithOwner returns the resource enriched with a minimal owner
	// projection, resolved via join.
	FindByIDWithOwner(ctx context.Context, id string) (*model.ResourceWithOwner, error)

	// ListByGroup returns a paginated, newest-first list of a group's resources.
	ListByGroup(ctx context.Context, groupID string, pq PageQuery) (*PageResult[model.Resource], error)

	// UpdateTitle rewrites the resource title.
	UpdateTitle(ctx context.Context, id, title string) (*model.Resource, error)

	// UpdateGroup rewrites the parent group pointer (resource move).
	UpdateGroup(ctx context.Context, id, toGroupID string) error

	// Delete removes the resource row, reporting whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)

	// ListBlobsByGroup resolves the blob pointers of every resource in a group.
	ListBlobsByGroup(ctx context.Context, groupID string) ([]BlobPointer, error)

	// ListBlobsByInstance resolves the blob pointers of every resource under an
	// instance (through its groups) in one join query.
	ListBlobsByInstance(ctx context.Context, instanceID string) ([]BlobPointer, error)

	// DeleteByGroup bulk-deletes a group's resources and returns counts per kind.
	DeleteByGroup(ctx context.Context, groupID string) (map[model.ResourceKind]int, error)

	// DeleteByInstance bulk-deletes all resources under an instance's groups and
	// returns counts per kind.
	DeleteByInstance(ctx context.Context, instanceID string) (map[model.ResourceKind]int, error)
}
