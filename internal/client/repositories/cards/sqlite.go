// Package cards keeps the last fetched public card listing in the local
// SQLite file so the directory can still be browsed while the backend is
// unreachable.
package cards

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/dbx"
)

// DB is satisfied by *sql.DB.
type DB interface {
	dbx.DBTX
	dbx.TxStarter
}

// SQLiteRepository stores cards in the cards table created by the metadata
// migrations. Each row holds the card as JSON and its position in the
// listing.
type SQLiteRepository struct {
	db  DB
	now func() time.Time
}

func NewSQLiteRepository(db DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// ReplaceAll swaps the stored listing for cards in one transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, cards []models.Card) error {
	fetchedAt := r.now().UTC()

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
			return fmt.Errorf("failed to clear cards: %w", err)
		}

		for i := range cards {
			payload, err := json.Marshal(&cards[i])
			if err != nil {
				return fmt.Errorf("failed to encode card %s: %w", cards[i].ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO cards (id, position, payload, fetched_at) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET position = excluded.position, payload = excluded.payload, fetched_at = excluded.fetched_at
			`, cards[i].ID, i, payload, fetchedAt)
			if err != nil {
				return fmt.Errorf("failed to store card %s: %w", cards[i].ID, err)
			}
		}
		return nil
	})
}

// List returns the stored listing in its original order and the time it was
// fetched. An empty cache yields (nil, zero time, nil).
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Card, time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload, fetched_at FROM cards ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to select cards: %w", err)
	}
	defer rows.Close()

	var (
		result    []models.Card
		fetchedAt time.Time
	)
	for rows.Next() {
		var (
			payload []byte
			at      sql.NullTime
		)
		if err := rows.Scan(&payload, &at); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan card row: %w", err)
		}

		card, err := models.DecodeCard(payload)
		if err != nil {
			return nil, time.Time{}, err
		}
		result = append(result, *card)
		if at.Valid {
			fetchedAt = at.Time
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to iterate card rows: %w", err)
	}
	return result, fetchedAt, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("failed to clear cards: %w", err)
	}
	return nil
}
