package postgres

import (
	"context"
	"database/sql"

	"mediavault/internal/model"
	"mediavault/internal/repository"
)

// GroupPostgres is a PostgreSQL implementation of repository.GroupRepository.
type GroupPostgres struct {
	db *sql.DB
}

// NewGroupPostgres creates a new GroupPostgres repository.
func NewGroupPostgres(db *sql.DB) *GroupPostgres {
	return &GroupPostgres{db: db}
}

var _ repository.GroupRepository = (*GroupPostgres)(nil)

const groupColumns = `id, name, owner_id, instance_id, created_at`

func scanGroup(row interface{ Scan(...any) error }) (*model.Group, error) {
	var g model.Group
	if err := row.Scan(
		&g.ID,
		&g.Name,
		&g.OwnerID,
		&g.InstanceID,
		&g.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a new group row and returns the stored record.
func (r *GroupPostgres) Create(ctx context.Context, g *model.Group) (*model.Group, error) {
	const q = `
		INSERT INTO groups (id, name, owner_id, instance_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + groupColumns
	row := r.db.QueryRowContext(ctx, q,
		g.ID,
		g.Name,
		g.OwnerID,
		g.InstanceID,
		g.CreatedAt,
	)
	return scanGroup(row)
}

// FindByID fetches a single group by its ID.
func (r *GroupPostgres) FindByID(ctx context.Context, id string) (*model.Group, error) {
	const q = `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`
	return scanGroup(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDWithResources fetches the group and a bounded, recency-ordered
// projection of its resources (title and blob ref only) via one lateral join.
func (r *GroupPostgres) FindByIDWithResources(ctx context.Context, id string, resourceLimit int) (*model.GroupDetail, error) {
	const q = `
		SELECT g.id, g.name, g.owner_id, g.instance_id, g.created_at,
		       res.id, res.kind, res.title, res.blob_public_id, res.blob_url
		FROM groups g
		LEFT JOIN LATERAL (
			SELECT id, kind, title, blob_public_id, blob_url
			FROM resources
			WHERE group_id = g.id
			ORDER BY created_at DESC
			LIMIT $2
		) res ON true
		WHERE g.id = $1
	`
	rows, err := r.db.QueryContext(ctx, q, id, resourceLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detail *model.GroupDetail
	for rows.Next() {
		var (
			g        model.Group
			resID    sql.NullString
			kind     sql.NullString
			title    sql.NullString
			publicID sql.NullString
			blobURL  sql.NullString
		)
		if err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.OwnerID,
			&g.InstanceID,
			&g.CreatedAt,
			&resID,
			&kind,
			&title,
			&publicID,
			&blobURL,
		); err != nil {
			return nil, err
		}
		if detail == nil {
			detail = &model.GroupDetail{Group: g, Resources: []model.ResourceSummary{}}
		}
		if resID.Valid {
			detail.Resources = append(detail.Resources, model.ResourceSummary{
				ID:    resID.String,
				Kind:  model.ResourceKind(kind.String),
				Title: title.String,
				Blob:  model.BlobRef{PublicID: publicID.String, URL: blobURL.String},
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, sql.ErrNoRows
	}
	return detail, nil
}

// ExistsByName reports whether the instance already contains a group with this name.
func (r *GroupPostgres) ExistsByName(ctx context.Context, instanceID, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM groups WHERE instance_id = $1 AND name = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, instanceID, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByInstance returns an instance's groups using LIMIT/OFFSET pagination.
func (r *GroupPostgres) ListByInstance(ctx context.Context, instanceID string, pq repository.PageQuery) (*repository.PageResult[model.Group], error) {
	const qCount = `SELECT COUNT(*) FROM groups WHERE instance_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, instanceID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE instance_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, instanceID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Group]{Items: items, Total: total}, nil
}

// UpdateName rewrites the group name and returns the stored record.
func (r *GroupPostgres) UpdateName(ctx context.Context, id, name string) (*model.Group, error) {
	const q = `
		UPDATE groups
		SET name = $2
		WHERE id = $1
		RETURNING ` + groupColumns
	return scanGroup(r.db.QueryRowContext(ctx, q, id, name))
}

// UpdateInstance rewrites the parent instance pointer in a single atomic update.
func (r *GroupPostgres) UpdateInstance(ctx context.Context, id, toInstanceID string) error {
	const q = `UPDATE groups SET instance_id = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, toInstanceID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a group by ID, reporting whether a row was deleted.
func (r *GroupPostgres) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM groups WHERE id = $1`
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

// DeleteByInstance bulk-deletes all groups of an instance.
func (r *GroupPostgres) DeleteByInstance(ctx context.Context, instanceID string) (int, error) {
	const q = `DELETE FROM groups WHERE instance_id = $1`
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
