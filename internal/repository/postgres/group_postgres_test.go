package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"mediavault/internal/model"
	"mediavault/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func groupRows(g *model.Group) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "owner_id", "instance_id", "created_at"}).
		AddRow(g.ID, g.Name, g.OwnerID, g.InstanceID, g.CreatedAt)
}

func TestGroupPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	g := &model.Group{
		ID:         "grp-uuid",
		Name:       "Beach",
		OwnerID:    "owner-uuid",
		InstanceID: "inst-uuid",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO groups").
		WithArgs(g.ID, g.Name, g.OwnerID, g.InstanceID, g.CreatedAt).
		WillReturnRows(groupRows(g))

	result, err := repo.Create(ctx, g)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, g.Name, result.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		g := &model.Group{ID: "grp-id", Name: "Beach", OwnerID: "owner-id", InstanceID: "inst-id", CreatedAt: time.Now()}

		mock.ExpectQuery("SELECT (.+) FROM groups WHERE id = ?").
			WithArgs("grp-id").
			WillReturnRows(groupRows(g))

		result, err := repo.FindByID(ctx, "grp-id")

		assert.NoError(t, err)
		assert.Equal(t, "inst-id", result.InstanceID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM groups WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, result)
	})
}

func TestGroupPostgres_FindByIDWithResources(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	cols := []string{"id", "name", "owner_id", "instance_id", "created_at", "id", "kind", "title", "blob_public_id", "blob_url"}

	t.Run("with resources", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(cols).
			AddRow("grp-id", "Beach", "owner-id", "inst-id", now, "res-1", "image", "Sunset", "images/sunset.png", "https://blobs/images/sunset.png").
			AddRow("grp-id", "Beach", "owner-id", "inst-id", now, "res-2", "video", "Waves", "videos/waves.mp4", "https://blobs/videos/waves.mp4")

		mock.ExpectQuery("SELECT (.+) FROM groups g").
			WithArgs("grp-id", 10).
			WillReturnRows(rows)

		detail, err := repo.FindByIDWithResources(ctx, "grp-id", 10)

		assert.NoError(t, err)
		assert.Len(t, detail.Resources, 2)
		assert.Equal(t, model.KindVideo, detail.Resources[1].Kind)
	})

	t.Run("empty group", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow("grp-id", "Beach", "owner-id", "inst-id", time.Now(), nil, nil, nil, nil, nil)

		mock.ExpectQuery("SELECT (.+) FROM groups g").
			WithArgs("grp-id", 10).
			WillReturnRows(rows)

		detail, err := repo.FindByIDWithResources(ctx, "grp-id", 10)

		assert.NoError(t, err)
		assert.Len(t, detail.Resources, 0)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM groups g").
			WithArgs("missing", 10).
			WillReturnRows(sqlmock.NewRows(cols))

		detail, err := repo.FindByIDWithResources(ctx, "missing", 10)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, detail)
	})
}

func TestGroupPostgres_ExistsByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("inst-id", "Beach").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByName(ctx, "inst-id", "Beach")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupPostgres_ListByInstance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM groups").
		WithArgs("inst-id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "owner_id", "instance_id", "created_at"}).
		AddRow("grp-1", "Beach", "owner-id", "inst-id", now).
		AddRow("grp-2", "Hikes", "owner-id", "inst-id", now)

	mock.ExpectQuery("SELECT (.+) FROM groups").
		WithArgs("inst-id", 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListByInstance(ctx, "inst-id", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupPostgres_UpdateInstance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	t.Run("moved", func(t *testing.T) {
		mock.ExpectExec("UPDATE groups SET instance_id").
			WithArgs("grp-id", "inst-2").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateInstance(ctx, "grp-id", "inst-2")

		assert.NoError(t, err)
	})

	t.Run("no row updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE groups SET instance_id").
			WithArgs("missing", "inst-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateInstance(ctx, "missing", "inst-2")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestGroupPostgres_DeleteByInstance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM groups WHERE instance_id = ?").
		WithArgs("inst-id").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByInstance(ctx, "inst-id")

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
