package postgres

import (
	"context"
	"database/sql"

	"mediavault/internal/model"
	"mediavault/internal/repository"
)

// ResourcePostgres is a PostgreSQL implementation of repository.ResourceRepository.
// All three resource kinds share one table; the kind column discriminates.
type ResourcePostgres struct {
	db *sql.DB
}

// NewResourcePostgres creates a new ResourcePostgres repository.
func NewResourcePostgres(db *sql.DB) *ResourcePostgres {
	return &ResourcePostgres{db: db}
}

var _ repository.ResourceRepository = (*ResourcePostgres)(nil)

const resourceColumns = `id, kind, title, owner_id, group_id, blob_public_id, blob_url, created_at`

func scanResource(row interface{ Scan(...any) error }) (*model.Resource, error) {
	var res model.Resource
	if err := row.Scan(
		&res.ID,
		&res.Kind,
		&res.Title,
		&res.OwnerID,
		&res.GroupID,
		&res.Blob.PublicID,
		&res.Blob.URL,
		&res.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a new resource row and returns the stored record.
func (r *ResourcePostgres) Create(ctx context.Context, res *model.Resource) (*model.Resource, error) {
	const q = `
		INSERT INTO resources (id, kind, title, owner_id, group_id, blob_public_id, blob_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + resourceColumns
	row := r.db.QueryRowContext(ctx, q,
		res.ID,
		res.Kind,
		res.Title,
		res.OwnerID,
		res.GroupID,
		res.Blob.PublicID,
		res.Blob.URL,
		res.CreatedAt,
	)
	return scanResource(row)
}

// FindByID fetches a single resource by its ID.
func (r *ResourcePostgres) FindByID(ctx context.Context, id string) (*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	return scanResource(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDWithOwner fetches a resource joined with a minimal owner projection.
func (r *ResourcePostgres) FindByIDWithOwner(ctx context.Context, id string) (*model.ResourceWithOwner, error) {
	const q = `
		SELECT r.id, r.kind, r.title, r.owner_id, r.group_id, r.blob_public_id, r.blob_url, r.created_at,
		       u.id, u.username, u.avatar_url
		FROM resources r
		JOIN users u ON u.id = r.owner_id
		WHERE r.id = $1
	`
	var out model.ResourceWithOwner
	row := r.db.QueryRowContext(ctx, q, id)
	if err := row.Scan(
		&out.ID,
		&out.Kind,
		&out.Title,
		&out.OwnerID,
		&out.GroupID,
		&out.Blob.PublicID,
		&out.Blob.URL,
		&out.CreatedAt,
		&out.Owner.ID,
		&out.Owner.Username,
		&out.Owner.AvatarURL,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByGroup returns a group's resources using LIMIT/OFFSET pagination.
func (r *ResourcePostgres) ListByGroup(ctx context.Context, groupID string, pq repository.PageQuery) (*repository.PageResult[model.Resource], error) {
	const qCount = `SELECT COUNT(*) FROM resources WHERE group_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, groupID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE group_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, groupID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Resource]{Items: items, Total: total}, nil
}

// UpdateTitle rewrites the resource title and returns the stored record.
func (r *ResourcePostgres) UpdateTitle(ctx context.Context, id, title string) (*model.Resource, error) {
	const q = `
		UPDATE resources
		SET title = $2
		WHERE id = $1
		RETURNING ` + resourceColumns
	return scanResource(r.db.QueryRowContext(ctx, q, id, title))
}

// UpdateGroup rewrites the parent group pointer in a single atomic update.
func (r *ResourcePostgres) UpdateGroup(ctx context.Context, id, toGroupID string) error {
	const q = `UPDATE resources SET group_id = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, toGroupID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a resource by ID, reporting whether a row was deleted.
func (r *ResourcePostgres) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM resources WHERE id = $1`
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

// ListBlobsByGroup resolves the blob pointers of a group's resources.
func (r *ResourcePostgres) ListBlobsByGroup(ctx context.Context, groupID string) ([]repository.BlobPointer, error) {
	const q = `SELECT kind, blob_public_id FROM resources WHERE group_id = $1`
	return r.queryBlobs(ctx, q, groupID)
}

// ListBlobsByInstance resolves the blob pointers of all resources under an
// instance through its groups in one join query.
func (r *ResourcePostgres) ListBlobsByInstance(ctx context.Context, instanceID string) ([]repository.BlobPointer, error) {
	const q = `
		SELECT r.kind, r.blob_public_id
		FROM resources r
		JOIN groups g ON g.id = r.group_id
		WHERE g.instance_id = $1
	`
	return r.queryBlobs(ctx, q, instanceID)
}

func (r *ResourcePostgres) queryBlobs(ctx context.Context, q, arg string) ([]repository.BlobPointer, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ptrs := make([]repository.BlobPointer, 0)
	for rows.Next() {
		var p repository.BlobPointer
		if err := rows.Scan(&p.Kind, &p.PublicID); err != nil {
			return nil, err
		}
		ptrs = append(ptrs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ptrs, nil
}

// DeleteByGroup bulk-deletes a group's resources, returning counts per kind.
func (r *ResourcePostgres) DeleteByGroup(ctx context.Context, groupID string) (map[model.ResourceKind]int, error) {
	const q = `DELETE FROM resources WHERE group_id = $1 RETURNING kind`
	return r.deleteReturningKinds(ctx, q, groupID)
}

// DeleteByInstance bulk-deletes all resources under an instance's groups,
// returning counts per kind.
func (r *ResourcePostgres) DeleteByInstance(ctx context.Context, instanceID string) (map[model.ResourceKind]int, error) {
	const q = `
		DELETE FROM resources
		WHERE group_id IN (SELECT id FROM groups WHERE instance_id = $1)
		RETURNING kind
	`
	return r.deleteReturningKinds(ctx, q, instanceID)
}

func (r *ResourcePostgres) deleteReturningKinds(ctx context.Context, q, arg string) (map[model.ResourceKind]int, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ResourceKind]int)
	for rows.Next() {
		var kind model.ResourceKind
		if err := rows.Scan(&kind); err != nil {
			return nil, err
		}
		counts[kind]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
