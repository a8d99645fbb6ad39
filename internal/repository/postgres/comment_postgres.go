package postgres

import (
	"context"
	"database/sql"

	"mediavault/internal/model"
	"mediavault/internal/repository"
)

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

// NewCommentPostgres creates a new CommentPostgres repository.
func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

const commentColumns = `id, content, instance_id, author_id, edited, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(
		&c.ID,
		&c.Content,
		&c.InstanceID,
		&c.AuthorID,
		&c.Edited,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new comment row and returns the stored record.
func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (id, content, instance_id, author_id, edited, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + commentColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Content,
		c.InstanceID,
		c.AuthorID,
		c.Edited,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return scanComment(row)
}

// FindByID fetches a single comment by its ID.
func (r *CommentPostgres) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return scanComment(r.db.QueryRowContext(ctx, q, id))
}

// ListByInstance returns a newest-first page of comments, each joined with a
// minimal author projection (username and avatar only, never full records).
func (r *CommentPostgres) ListByInstance(ctx context.Context, instanceID string, pq repository.PageQuery) (*repository.PageResult[model.CommentWithAuthor], error) {
	const qCount = `SELECT COUNT(*) FROM comments WHERE instance_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, instanceID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT c.id, c.content, c.instance_id, c.author_id, c.edited, c.created_at, c.updated_at,
		       u.id, u.username, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.instance_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, instanceID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CommentWithAuthor, 0)
	for rows.Next() {
		var cw model.CommentWithAuthor
		if err := rows.Scan(
			&cw.ID,
			&cw.Content,
			&cw.InstanceID,
			&cw.AuthorID,
			&cw.Edited,
			&cw.CreatedAt,
			&cw.UpdatedAt,
			&cw.Author.ID,
			&cw.Author.Username,
			&cw.Author.AvatarURL,
		); err != nil {
			return nil, err
		}
		items = append(items, cw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.CommentWithAuthor]{Items: items, Total: total}, nil
}

// UpdateContent rewrites the content, flips the edited flag, and bumps updated_at.
func (r *CommentPostgres) UpdateContent(ctx context.Context, id, content string) (*model.Comment, error) {
	const q = `
		UPDATE comments
		SET content = $2, edited = true, updated_at = now()
		WHERE id = $1
		RETURNING ` + commentColumns
	return scanComment(r.db.QueryRowContext(ctx, q, id, content))
}

// Delete removes a comment by ID, reporting whether a row was deleted.
func (r *CommentPostgres) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM comments WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByInstance bulk-deletes an instance's comments.
func (r *CommentPostgres) DeleteByInstance(ctx context.Context, instanceID string) (int, error) {
	const q = `DELETE FROM comments WHERE instance_id = $1`
	res, err := r.db.ExecContext(ctx, q, instanceID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
