package postgres

import (
	"context"
	"database/sql"

	"mediavault/internal/model"
	"mediavault/internal/repository"
)

// InstancePostgres is a PostgreSQL implementation of repository.InstanceRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type InstancePostgres struct {
	db *sql.DB
}

// NewInstancePostgres creates a new InstancePostgres repository.
func NewInstancePostgres(db *sql.DB) *InstancePostgres {
	return &InstancePostgres{db: db}
}

var _ repository.InstanceRepository = (*InstancePostgres)(nil)

const instanceColumns = `id, title, description, thumb_public_id, thumb_url, visibility, password_hash, owner_id, created_at`

func scanInstance(row interface{ Scan(...any) error }) (*model.Instance, error) {
	var (
		inst model.Instance
		hash sql.NullString
	)
	if err := row.Scan(
		&inst.ID,
		&inst.Title,
		&inst.Description,
		&inst.Thumbnail.PublicID,
		&inst.Thumbnail.URL,
		&inst.Visibility,
		&hash,
		&inst.OwnerID,
		&inst.CreatedAt,
	); err != nil {
		return nil, err
	}
	inst.PasswordHash = hash.String
	return &inst, nil
}

// Create inserts a new instance row and returns the stored record.
func (r *InstancePostgres) Create(ctx context.Context, inst *model.Instance) (*model.Instance, error) {
	const q = `
		INSERT INTO instances (id, title, description, thumb_public_id, thumb_url, visibility, password_hash, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + instanceColumns
	var hash sql.NullString
	if inst.PasswordHash != "" {
		hash = sql.NullString{String: inst.PasswordHash, Valid: true}
	}
	row := r.db.QueryRowContext(ctx, q,
		inst.ID,
		inst.Title,
		inst.Description,
		inst.Thumbnail.PublicID,
		inst.Thumbnail.URL,
		inst.Visibility,
		hash,
		inst.OwnerID,
		inst.CreatedAt,
	)
	return scanInstance(row)
}

// FindByID fetches a single instance by its ID.
func (r *InstancePostgres) FindByID(ctx context.Context, id string) (*model.Instance, error) {
	const q = `SELECT ` + instanceColumns + ` FROM instances WHERE id = $1`
	return scanInstance(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDWithGroups fetches the instance and a bounded, recency-ordered
// projection of its groups using one lateral join, not N lookups.
func (r *InstancePostgres) FindByIDWithGroups(ctx context.Context, id string, groupLimit int) (*model.InstanceDetail, error) {
	const q = `
		SELECT i.id, i.title, i.description, i.thumb_public_id, i.thumb_url, i.visibility, i.password_hash, i.owner_id, i.created_at,
		       g.id, g.name
		FROM instances i
		LEFT JOIN LATERAL (
			SELECT id, name
			FROM groups
			WHERE instance_id = i.id
			ORDER BY created_at DESC
			LIMIT $2
		) g ON true
		WHERE i.id = $1
	`
	rows, err := r.db.QueryContext(ctx, q, id, groupLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detail *model.InstanceDetail
	for rows.Next() {
		var (
			inst    model.Instance
			hash    sql.NullString
			groupID sql.NullString
			name    sql.NullString
		)
		if err := rows.Scan(
			&inst.ID,
			&inst.Title,
			&inst.Description,
			&inst.Thumbnail.PublicID,
			&inst.Thumbnail.URL,
			&inst.Visibility,
			&hash,
			&inst.OwnerID,
			&inst.CreatedAt,
			&groupID,
			&name,
		); err != nil {
			return nil, err
		}
		if detail == nil {
			inst.PasswordHash = hash.String
			detail = &model.InstanceDetail{Instance: inst, Groups: []model.GroupSummary{}}
		}
		if groupID.Valid {
			detail.Groups = append(detail.Groups, model.GroupSummary{ID: groupID.String, Name: name.String})
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

// ListByOwner returns an owner's instances using LIMIT/OFFSET pagination and a total count.
func (r *InstancePostgres) ListByOwner(ctx context.Context, ownerID string, pq repository.PageQuery) (*repository.PageResult[model.Instance], error) {
	const qCount = `SELECT COUNT(*) FROM instances WHERE owner_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, ownerID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + instanceColumns + `
		FROM instances
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, ownerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Instance, 0)
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Instance]{Items: items, Total: total}, nil
}

// Update rewrites title and description and returns the stored record.
func (r *InstancePostgres) Update(ctx context.Context, id, title, description string) (*model.Instance, error) {
	const q = `
		UPDATE instances
		SET title = $2, description = $3
		WHERE id = $1
		RETURNING ` + instanceColumns
	return scanInstance(r.db.QueryRowContext(ctx, q, id, title, description))
}

// UpdateThumbnail rewrites the thumbnail blob reference.
func (r *InstancePostgres) UpdateThumbnail(ctx context.Context, id string, thumb model.BlobRef) (*model.Instance, error) {
	const q = `
		UPDATE instances
		SET thumb_public_id = $2, thumb_url = $3
		WHERE id = $1
		RETURNING ` + instanceColumns
	return scanInstance(r.db.QueryRowContext(ctx, q, id, thumb.PublicID, thumb.URL))
}

// SetVisibility rewrites visibility and password hash in one statement so the
// schema check (hash present iff private) can never observe a half state.
func (r *InstancePostgres) SetVisibility(ctx context.Context, id string, vis model.Visibility, passwordHash *string) error {
	const q = `UPDATE instances SET visibility = $2, password_hash = $3 WHERE id = $1`
	var hash sql.NullString
	if passwordHash != nil {
		hash = sql.NullString{String: *passwordHash, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, q, id, vis, hash)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetPasswordHash rotates the stored hash.
func (r *InstancePostgres) SetPasswordHash(ctx context.Context, id, hash string) error {
	const q = `UPDATE instances SET password_hash = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, hash)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an instance by ID, reporting whether a row was deleted.
func (r *InstancePostgres) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM instances WHERE id = $1`
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
