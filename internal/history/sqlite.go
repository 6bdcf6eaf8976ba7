package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		last_seen_at TEXT NOT NULL
	)
`

// SQLiteBackend stores one row per match, each carrying the JSON-encoded entry.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Name() string { return "sqlite" }

func (b *SQLiteBackend) Load(ctx context.Context) (map[string]matches.HistoryEntry, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT id, payload FROM history`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]matches.HistoryEntry)
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		var entry matches.HistoryEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		entries[id] = entry
	}
	return entries, rows.Err()
}

// Save replaces all rows in a single transaction.
func (b *SQLiteBackend) Save(ctx context.Context, entries map[string]matches.HistoryEntry) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO history (id, payload, last_seen_at) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, entry := range entries {
		payload, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, id, string(payload), entry.LastSeenAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
