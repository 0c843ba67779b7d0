package cards

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := metadata.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func card(id, title string, likes ...string) models.Card {
	if likes == nil {
		likes = []string{}
	}
	return models.Card{ID: id, Title: title, OwnerUserID: "owner", LikedBy: likes}
}

func TestSQLite_ReplaceAllAndList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	fixed := time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }
	ctx := context.Background()

	got, at, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, at.IsZero())

	require.NoError(t, r.ReplaceAll(ctx, []models.Card{card("b", "Bakery", "u1"), card("a", "Atelier")}))

	got, at, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "listing order is kept")
	assert.Equal(t, []string{"u1"}, got[0].LikedBy)
	assert.Equal(t, "Atelier", got[1].Title)
	assert.True(t, fixed.Equal(at), "fetched at %v", at)

	require.NoError(t, r.ReplaceAll(ctx, []models.Card{card("a", "Atelier v2")}))

	got, _, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "cards missing from the new listing are dropped")
	assert.Equal(t, "Atelier v2", got[0].Title)
}

func TestSQLite_Clear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.Card{card("a", "Atelier")}))
	require.NoError(t, r.Clear(ctx))

	got, _, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_ReplaceAll_RollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM cards`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO cards`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewSQLiteRepository(db).ReplaceAll(context.Background(), []models.Card{card("a", "Atelier")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store card a")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_List_RejectsCorruptPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"payload", "fetched_at"}).
		AddRow([]byte(`{"title":"no id"}`), time.Now())
	mock.ExpectQuery(`SELECT payload, fetched_at FROM cards`).WillReturnRows(rows)

	_, _, err = NewSQLiteRepository(db).List(context.Background())
	require.ErrorIs(t, err, models.ErrMalformedPayload)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_List_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT payload`).WillReturnError(sql.ErrConnDone)

	_, _, err = NewSQLiteRepository(db).List(context.Background())
	require.ErrorIs(t, err, sql.ErrConnDone)
}
