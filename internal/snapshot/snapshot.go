// Package snapshot persists the last-known-good card list per dataset
// variant. The store is the engine's resilience anchor: reads never fail
// (absent or corrupt state degrades to an empty snapshot), and a variant
// is only ever replaced wholesale by a refresh that actually produced
// cards.
package snapshot

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matheuskafuri/cardex/internal/card"
	_ "modernc.org/sqlite"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB

	// Serializes the read-modify-write of a single variant. Distinct
	// variants touch disjoint rows and may refresh concurrently.
	mu map[card.Variant]*sync.Mutex
}

// Entry is one variant's persisted dataset.
type Entry struct {
	Cards     []card.Card
	UpdatedAt time.Time
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	mu := make(map[card.Variant]*sync.Mutex)
	for _, v := range card.Variants() {
		mu[v] = &sync.Mutex{}
	}

	s := &Store{readDB: readDB, writeDB: writeDB, mu: mu}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS cards (
			variant    TEXT NOT NULL,
			position   INTEGER NOT NULL,
			id         TEXT NOT NULL,
			name       TEXT NOT NULL,
			image_url  TEXT NOT NULL,
			set_number TEXT NOT NULL DEFAULT '',
			info       TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (variant, position)
		);
		CREATE INDEX IF NOT EXISTS idx_cards_variant ON cards(variant);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (s *Store) lock(v card.Variant) *sync.Mutex {
	if m, ok := s.mu[v]; ok {
		return m
	}
	// Unknown variants share one lock; ParseVariant keeps this path cold.
	return s.mu[card.VariantBase]
}

// Write replaces a variant's card list in one transaction and stamps its
// update time. Write failures propagate: a refresh that silently fails to
// persist would poison later staleness decisions.
func (s *Store) Write(v card.Variant, cards []card.Card) error {
	m := s.lock(v)
	m.Lock()
	defer m.Unlock()

	tx, err := s.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cards WHERE variant = ?`, string(v)); err != nil {
		return fmt.Errorf("clearing variant %s: %w", v, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO cards (variant, position, id, name, image_url, set_number, info)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range cards {
		if _, err := stmt.Exec(string(v), i, c.ID, c.Name, c.ImageURL, c.SetNumber, c.Info); err != nil {
			return fmt.Errorf("inserting card %s: %w", c.ID, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, updatedAtKey(v), now); err != nil {
		return fmt.Errorf("stamping update time: %w", err)
	}

	return tx.Commit()
}

// Read returns a variant's persisted entry. It never fails: missing or
// unreadable state comes back as an empty card list with a zero time.
func (s *Store) Read(v card.Variant) Entry {
	var entry Entry

	rows, err := s.readDB.Query(`
		SELECT id, name, image_url, set_number, info
		FROM cards WHERE variant = ? ORDER BY position
	`, string(v))
	if err != nil {
		return entry
	}
	defer rows.Close()

	for rows.Next() {
		var c card.Card
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &c.SetNumber, &c.Info); err != nil {
			return Entry{}
		}
		entry.Cards = append(entry.Cards, c)
	}
	if rows.Err() != nil {
		return Entry{}
	}

	entry.UpdatedAt = s.updatedAt(v)
	return entry
}

func (s *Store) updatedAt(v card.Variant) time.Time {
	var value string
	err := s.readDB.QueryRow(`SELECT value FROM meta WHERE key = ?`, updatedAtKey(v)).Scan(&value)
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func updatedAtKey(v card.Variant) string {
	return "updated_at:" + string(v)
}

// Stats reports per-variant card counts and the db file size.
func (s *Store) Stats(dbPath string) (map[card.Variant]int, int64, error) {
	counts := make(map[card.Variant]int)
	rows, err := s.readDB.Query(`SELECT variant, COUNT(*) FROM cards GROUP BY variant`)
	if err != nil {
		return nil, 0, fmt.Errorf("counting cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v string
			n int
		)
		if err := rows.Scan(&v, &n); err != nil {
			return nil, 0, fmt.Errorf("scanning count: %w", err)
		}
		counts[card.Variant(v)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	info, err := os.Stat(dbPath)
	if err != nil {
		return counts, 0, nil
	}
	return counts, info.Size(), nil
}
