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

func resourceRows(res *model.Resource) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "kind", "title", "owner_id", "group_id", "blob_public_id", "blob_url", "created_at"}).
		AddRow(res.ID, res.Kind, res.Title, res.OwnerID, res.GroupID, res.Blob.PublicID, res.Blob.URL, res.CreatedAt)
}

func TestResourcePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResourcePostgres(db)
	ctx := context.Background()

	res := &model.Resource{
		ID:        "res-uuid",
		Kind:      model.KindImage,
		Title:     "Sunset",
		OwnerID:   "owner-uuid",
		GroupID:   "grp-uuid",
		Blob:      model.BlobRef{PublicID: "images/sunset.png", URL: "https://blobs/images/sunset.png"},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO resources").
		WithArgs(res.ID, res.Kind, res.Title, res.OwnerID, res.GroupID, res.Blob.PublicID, res.Blob.URL, res.CreatedAt).
		WillReturnRows(resourceRows(res))

	result, err := repo.Create(ctx, res)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, model.KindImage, result.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourcePostgres_FindByIDWithOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResourcePostgres(db)
	ctx := context.Background()

	cols := []string{"id", "kind", "title", "owner_id", "group_id", "blob_public_id", "blob_url", "created_at", "id", "username", "avatar_url"}

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow("res-id", "document", "Notes", "owner-id", "grp-id", "documents/notes.pdf", "https://blobs/documents/notes.pdf", time.Now(), "owner-id", "alice", "https://blobs/avatars/alice.png")

		mock.ExpectQuery("SELECT (.+) FROM resources r").
			WithArgs("res-id").
			WillReturnRows(rows)

		result, err := repo.FindByIDWithOwner(ctx, "res-id")

		assert.NoError(t, err)
		assert.Equal(t, model.KindDocument, result.Kind)
		assert.Equal(t, "alice", result.Owner.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM resources r").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByIDWithOwner(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, result)
	})
}

func TestResourcePostgres_ListByGroup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResourcePostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM resources").
		WithArgs("grp-id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	res := &model.Resource{ID: "res-id", Kind: model.KindVideo, Title: "Waves", OwnerID: "owner-id", GroupID: "grp-id", CreatedAt: time.Now()}
	mock.ExpectQuery("SELECT (.+) FROM resources").
		WithArgs("grp-id", 10, 0).
		WillReturnRows(resourceRows(res))

	page, err := repo.ListByGroup(ctx, "grp-id", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourcePostgres_UpdateGroup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResourcePostgres(db)
	ctx := context.Background()

	t.Run("moved", func(t *testing.T) {
		mock.ExpectExec("UPDATE resources SET group_id").
			WithArgs("res-id", "grp-2").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateGroup(ctx, "res-id", "grp-2")

		assert.NoError(t, err)
	})

	t.Run("no row updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE resources SET group_id").
			WithArgs("missing", "grp-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateGroup(ctx, "missing", "grp-2")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestResourcePostgres_ListBlobsByInstance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResourcePostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"kind", "blob_public_id"}).
		AddRow("image", "images/sunset.png").
		AddRow("video", "videos/waves.mp4").
		AddRow("document", "documents/notes.pdf")

	mock.ExpectQuery("SELECT (.+) FROM resources r").
		WithArgs("inst-id").
		WillReturnRows(rows)

	ptrs, err := repo.ListBlobsByInstance(ctx, "inst-id")

	assert.NoError(t, err)
	assert.Len(t, ptrs, 3)
	assert.Equal(t, model.KindVideo, ptrs[1].Kind)
	assert.Equal(t, "videos/waves.mp4", ptrs[1].PublicID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourcePostgres_DeleteByInstance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResourcePostgres(db)
	ctx := context.Background()

	t.Run("tallies per kind", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"kind"}).
			AddRow("image").
			AddRow("image").
			AddRow("document")

		mock.ExpectQuery("DELETE FROM resources").
			WithArgs("inst-id").
			WillReturnRows(rows)

		counts, err := repo.DeleteByInstance(ctx, "inst-id")

		assert.NoError(t, err)
		assert.Equal(t, 2, counts[model.KindImage])
		assert.Equal(t, 1, counts[model.KindDocument])
		assert.Equal(t, 0, counts[model.KindVideo])
	})

	t.Run("nothing to delete", func(t *testing.T) {
		mock.ExpectQuery("DELETE FROM resources").
			WithArgs("empty-inst").
			WillReturnRows(sqlmock.NewRows([]string{"kind"}))

		counts, err := repo.DeleteByInstance(ctx, "empty-inst")

		assert.NoError(t, err)
		assert.Empty(t, counts)
	})
}

func TestResourcePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResourcePostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM resources WHERE id = ?").
		WithArgs("res-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(ctx, "res-id")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
