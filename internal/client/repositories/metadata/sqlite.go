package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/client/repositories/metadata/migrations"
	"github.com/dmitrijs2005/bizcards/internal/dbx"
	"github.com/dmitrijs2005/bizcards/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// DefaultPollInterval is how often SQLite change feeds check data_version.
const DefaultPollInterval = time.Second

// MaxPollFailures is how many data_version reads in a row may fail before a
// change feed gives up and closes its channel.
const MaxPollFailures = 5

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the SQLite file at path and brings
// its schema up to date. A busy timeout lets several client processes share
// the file.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type SQLiteRepository struct {
	db           *sql.DB
	pollInterval time.Duration
	log          logging.Logger
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, pollInterval: DefaultPollInterval, log: logging.Discard()}
}

// WithLogger sets the logger change feeds report poll failures to.
func (r *SQLiteRepository) WithLogger(log logging.Logger) *SQLiteRepository {
	if log != nil {
		r.log = log.With("component", "sqlite-feed")
	}
	return r
}

// WithPollInterval overrides how often Changes polls for foreign writes.
func (r *SQLiteRepository) WithPollInterval(d time.Duration) *SQLiteRepository {
	if d > 0 {
		r.pollInterval = d
	}
	return r
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

// Delete removes keys in one transaction. Missing keys are not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
				return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

// Changes polls PRAGMA data_version on a dedicated connection. The value
// moves whenever another connection (in this or another process) commits.
// After MaxPollFailures failed reads in a row the channel is closed.
func (r *SQLiteRepository) Changes(ctx context.Context) (<-chan Change, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to pin connection: %w", err)
	}

	var last int64
	if err := conn.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&last); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to read data_version: %w", err)
	}

	ch := make(chan Change, 1)

	go func() {
		defer close(ch)
		defer conn.Close()

		ticker := time.NewTicker(r.pollInterval)
		defer ticker.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var v int64
				if err := conn.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&v); err != nil {
					if ctx.Err() != nil {
						return
					}
					failures++
					if failures >= MaxPollFailures {
						r.log.Error(ctx, "giving up on change feed", "failures", failures, "error", err)
						return
					}
					r.log.Warn(ctx, "failed to poll data_version", "attempt", failures, "error", err)
					continue
				}
				failures = 0
				if v == last {
					continue
				}
				last = v
				// Coalesce: one pending Change is enough to trigger a re-read.
				select {
				case ch <- Change{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}
