package repository

import (
	"context"

	"mediavault/internal/model"
)

// GroupRepository defines persistence for groups.
type GroupRepository interface {
	// Create inserts a new group row and returns the stored record.
	Create(ctx context.Context, g *model.Group) (*model.Group, error)

	// FindByID returns a group by its ID.
	FindByID(ctx context.Context, id string) (*model.Group, error)

	// FindByIDWithResources returns the group plus a recency-ordered projection
	// of at most resourceLimit of its resources, resolved in a single join query.
	FindByIDWithResources(ctx context.Context, id string, resourceLimit int) (*model.GroupDetail, error)

	// ExistsByName reports whether a group with this name already exists inside
	// the instance.
	ExistsByName(ctx context.Context, instanceID, name string) (bool, error)

	// ListByInstance returns a paginated list of an instance's groups.
	ListByInstance(ctx context.Context, instanceID string, pq PageQuery) (*PageResult[model.Group], error)

	// UpdateName rewrites the group name.
	UpdateName(ctx context.Context, id, name string) (*model.Group, error)

	// UpdateInstance rewrites the parent instance pointer (group move). The
	// single-column update is atomic: the group is never duplicated or dropped.
	UpdateInstance(ctx context.Context, id, toInstanceID string) error

	// Delete removes the group row, reporting whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteByInstance bulk-deletes all groups of an instance and returns the
	// number of rows removed.
	DeleteByInstance(ctx context.Context, instanceID string) (int, error)
}
