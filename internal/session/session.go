// Package session holds the "currently revealed card" record: a simple
// key-value pair the viewer page polls. The engine never depends on it;
// the browse UI publishes into it from engine output.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Record is the published selection.
type Record struct {
	Name      string
	ImageURL  string
	Revealed  bool
	UpdatedAt time.Time
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing session schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Publish replaces the current record wholesale.
func (s *Store) Publish(name, imageURL string, revealed bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pairs := map[string]string{
		"name":       name,
		"image_url":  imageURL,
		"revealed":   fmt.Sprintf("%t", revealed),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range pairs {
		if _, err := tx.Exec(`
			INSERT INTO session (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, v); err != nil {
			return fmt.Errorf("publishing %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Current returns the published record; ok is false when nothing has
// ever been published.
func (s *Store) Current() (Record, bool, error) {
	rows, err := s.db.Query(`SELECT key, value FROM session`)
	if err != nil {
		return Record{}, false, fmt.Errorf("reading session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Record{}, false, fmt.Errorf("scanning session: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return Record{}, false, err
	}
	if len(values) == 0 {
		return Record{}, false, nil
	}

	rec := Record{
		Name:     values["name"],
		ImageURL: values["image_url"],
		Revealed: values["revealed"] == "true",
	}
	if t, err := time.Parse(time.RFC3339Nano, values["updated_at"]); err == nil {
		rec.UpdatedAt = t
	}
	return rec, true, nil
}

// Clear removes the published record, hiding the viewer's image.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session`)
	return err
}
