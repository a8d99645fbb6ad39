package repository

import (
	"context"

	"mediavault/internal/model"
)

// CommentRepository defines persistence for the per-instance comment stream.
type CommentRepository interface {
	// Create inserts a new comment row and returns the stored record.
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)

	// FindByID returns a comment by its ID.
	FindByID(ctx context.Context, id string) (*model.Comment, error)

	// ListByInstance returns a newest-first page of an instance's comments, each
	// enriched with a minimal author projection via join.
	ListByInstance(ctx context.Context, instanceID string, pq PageQuery) (*PageResult[model.CommentWithAuthor], error)

	// UpdateContent rewrites the content and sets the edited flag.
	UpdateContent(ctx context.Context, id, content string) (*model.Comment, error)

	// Delete removes the comment row, reporting whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteByInstance bulk-deletes an instance's comments and returns the
	// number of rows removed.
	DeleteByInstance(ctx context.Context, instanceID string) (int, error)
}
