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

// CommentListResult is the service-level DTO for a comment page.
type CommentListResult struct {
	Items []model.CommentWithAuthor `json:"data"`
	Total int                       `json:"total"`
}

// CommentService defines the use cases for the per-instance comment stream.
type CommentService interface {
	// List returns a newest-first page of an instance's comments, gated by the
	// instance's access policy.
	List(ctx context.Context, instanceID, callerID, password string, limit, offset int) (*CommentListResult, error)

	// Create posts a comment. Any caller who passes the access policy may
	// comment, not only the instance owner.
	Create(ctx context.Context, instanceID, callerID, password, content string) (*model.Comment, error)

	// Update rewrites the content and marks the comment edited; author only.
	Update(ctx context.Context, instanceID, commentID, callerID, content string) (*model.Comment, error)

	// Delete removes a comment; the author or the instance owner.
	Delete(ctx context.Context, instanceID, commentID, callerID string) error
}

type commentService struct {
	repo      repository.CommentRepository
	instances repository.InstanceRepository
}

// NewCommentService constructs a CommentService.
func NewCommentService(repo repository.CommentRepository, instances repository.InstanceRepository) CommentService {
	return &commentService{repo: repo, instances: instances}
}

func (s *commentService) List(ctx context.Context, instanceID, callerID, password string, limit, offset int) (*CommentListResult, error) {
	if _, err := s.accessibleInstance(ctx, instanceID, callerID, password); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.ListByInstance(ctx, instanceID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &CommentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *commentService) Create(ctx context.Context, instanceID, callerID, password, content string) (*model.Comment, error) {
	inst, err := s.accessibleInstance(ctx, instanceID, callerID, password)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrValidation
	}
	now := time.Now().UTC()
	c := &model.Comment{
		ID:         uuid.New().String(),
		Content:    content,
		InstanceID: inst.ID,
		AuthorID:   callerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.repo.Create(ctx, c)
}

func (s *commentService) Update(ctx context.Context, instanceID, commentID, callerID, content string) (*model.Comment, error) {
	c, _, err := s.resolve(ctx, instanceID, commentID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != callerID {
		return nil, ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrValidation
	}
	updated, err := s.repo.UpdateContent(ctx, c.ID, content)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return updated, nil
}

func (s *commentService) Delete(ctx context.Context, instanceID, commentID, callerID string) error {
	c, inst, err := s.resolve(ctx, instanceID, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != callerID && inst.OwnerID != callerID {
		return ErrUnauthorized
	}
	ok, err := s.repo.Delete(ctx, c.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// resolve re-checks instance and comment existence on every mutation so a
// concurrently cascaded instance yields NotFound, not a dangling write.
func (s *commentService) resolve(ctx context.Context, instanceID, commentID string) (*model.Comment, *model.Instance, error) {
	if err := parseID(instanceID); err != nil {
		return nil, nil, err
	}
	if err := parseID(commentID); err != nil {
		return nil, nil, err
	}
	inst, err := s.instances.FindByID(ctx, instanceID)
	if err != nil {
		return nil, nil, mapNoRows(err)
	}
	c, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, nil, mapNoRows(err)
	}
	if c.InstanceID != inst.ID {
		return nil, nil, ErrNotFound
	}
	return c, inst, nil
}

func (s *commentService) accessibleInstance(ctx context.Context, instanceID, callerID, password string) (*model.Instance, error) {
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
