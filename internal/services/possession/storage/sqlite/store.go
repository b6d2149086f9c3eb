package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/possession/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/possession/internal/services/possession/storage"
	"github.com/louisbranch/possession/internal/services/possession/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed tick journal persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a possession SQLite store and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordTick persists one game loop tick outcome.
func (s *Store) RecordTick(ctx context.Context, record storage.TickRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	record.ID = strings.TrimSpace(record.ID)
	record.CharacterID = strings.TrimSpace(record.CharacterID)
	record.CoordinatorState = strings.TrimSpace(record.CoordinatorState)
	record.Error = strings.TrimSpace(record.Error)
	if record.ID == "" {
		return fmt.Errorf("tick id is required")
	}
	if record.CharacterID == "" {
		return fmt.Errorf("character id is required")
	}
	if record.CoordinatorState == "" {
		return fmt.Errorf("coordinator state is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO possession_ticks (
	id,
	character_id,
	tick,
	coordinator_state,
	dispatched,
	last_error,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?)
`,
		record.ID,
		record.CharacterID,
		record.Tick,
		record.CoordinatorState,
		record.Dispatched,
		record.Error,
		record.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record tick: %w", err)
	}
	return nil
}

// ListTicks lists newest-first tick records for one character.
func (s *Store) ListTicks(ctx context.Context, characterID string, limit int) ([]storage.TickRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	character_id,
	tick,
	coordinator_state,
	dispatched,
	last_error,
	created_at
FROM possession_ticks
WHERE character_id = ?
ORDER BY created_at DESC, tick DESC
LIMIT ?
`, characterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list ticks: %w", err)
	}
	defer rows.Close()

	records := make([]storage.TickRecord, 0, limit)
	for rows.Next() {
		var record storage.TickRecord
		var createdAt int64
		if err := rows.Scan(
			&record.ID,
			&record.CharacterID,
			&record.Tick,
			&record.CoordinatorState,
			&record.Dispatched,
			&record.Error,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		record.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticks: %w", err)
	}
	return records, nil
}

var _ storage.TickStore = (*Store)(nil)
