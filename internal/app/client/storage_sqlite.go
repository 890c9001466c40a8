package client

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"admingrid/internal/domain/grid"
)

// ErrNoSnapshot reports that a collection has never been loaded
// successfully on this machine.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotStore keeps the last successfully loaded row set per collection
// in a local sqlite file. When a reload fails, the console can fall back to
// this stale-but-consistent copy instead of showing nothing.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}

	store := &SnapshotStore{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot tables: %w", err)
	}

	return store, nil
}

func (s *SnapshotStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			collection TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			fetched_at DATETIME NOT NULL
		);
	`)
	return err
}

// Save replaces the stored snapshot for a collection.
func (s *SnapshotStore) Save(name string, rows []grid.Row) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (collection, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(collection) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, name, string(payload), time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot and when it was fetched.
func (s *SnapshotStore) Load(name string) ([]grid.Row, time.Time, error) {
	var payload, fetchedAt string
	err := s.db.QueryRow(
		"SELECT payload, fetched_at FROM snapshots WHERE collection = ?", name,
	).Scan(&payload, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load snapshot: %w", err)
	}

	var rows []grid.Row
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, time.Time{}, fmt.Errorf("parse snapshot: %w", err)
	}

	at, _ := time.Parse(time.RFC3339, fetchedAt)
	return rows, at, nil
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
