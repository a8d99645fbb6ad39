package repository

import (
	"context"

	"mediavault/internal/model"
)

// InstanceRepository defines persistence for instances using SQL queries only.
type InstanceRepository interface {
	// Create inserts a new instance row and returns the stored record.
	Create(ctx context.Context, inst *model.Instance) (*model.Instance, error)

	// FindByID returns an instance by its ID.
	FindByID(ctx context.Context, id string) (*model.Instance, error)

	// FindByIDWithGroups returns the instance plus a recency-ordered projection
	// of at most groupLimit of its groups, resolved in a single join query.
	FindByIDWithGroups(ctx context.Context, id string, groupLimit int) (*model.InstanceDetail, error)

	// ListByOwner returns a paginated list of an owner's instances and total count.
	ListByOwner(ctx context.Context, ownerID string, pq PageQuery) (*PageResult[model.Instance], error)

	// Update rewrites title and description.
	Update(ctx context.Context, id, title, description string) (*model.Instance, error)

	// UpdateThumbnail rewrites the thumbnail blob reference.
	UpdateThumbnail(ctx context.Context, id string, thumb model.BlobRef) (*model.Instance, error)

	// SetVisibility atomically rewrites visibility together with the password
	// hash (nil clears the hash, as the schema requires for public instances).
	SetVisibility(ctx context.Context, id string, vis model.Visibility, passwordHash *string) error

	// SetPasswordHash rotates the stored hash of a private instance.
	SetPasswordHash(ctx context.Context, id, hash string) error

	// Delete removes the instance row. It reports whether a row was actually
	// deleted; deleting an already-gone row is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
