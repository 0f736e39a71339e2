// Package store persists the client-side collections (alerts,
// portfolio, watchlist) as opaque JSON records in SQLite. It carries no
// market logic; the core never reads from it.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Collections is the closed set of tables the store manages.
var Collections = []string{"alerts", "portfolio", "watchlist"}

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrNotFound          = errors.New("record not found")
)

// Record is one stored entry with its opaque payload.
type Record struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt int64           `json:"updated_at"`
}

// Store wraps the SQLite handle. Writes are serialized with a mutex;
// reads go straight to the pool.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the database and runs migrations.
func Open(path string, log *logrus.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL keeps reads cheap while the API writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.WithField("component", "store").WithField("path", path).Info("store opened")
	return s, nil
}

func (s *Store) migrate() error {
	for _, c := range Collections {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`, c)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create table %s: %w", c, err)
		}
	}
	return nil
}

func validCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// Put upserts a record and returns its id, generating one when empty.
func (s *Store) Put(collection, id string, payload json.RawMessage) (string, error) {
	if !validCollection(collection) {
		return "", ErrUnknownCollection
	}
	if id == "" {
		id = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stmt := fmt.Sprintf(`INSERT INTO %s (id, payload, updated_at) VALUES (?,?,?)
		ON CONFLICT(id) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`, collection)
	if _, err := s.db.Exec(stmt, id, string(payload), time.Now().Unix()); err != nil {
		return "", fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return id, nil
}

// Get returns one record by id.
func (s *Store) Get(collection, id string) (Record, error) {
	if !validCollection(collection) {
		return Record{}, ErrUnknownCollection
	}
	row := s.db.QueryRow(fmt.Sprintf(`SELECT id, payload, updated_at FROM %s WHERE id = ?`, collection), id)
	var rec Record
	var payload string
	if err := row.Scan(&rec.ID, &payload, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	rec.Payload = json.RawMessage(payload)
	return rec, nil
}

// Delete removes one record by id. Deleting an absent id is not an error.
func (s *Store) Delete(collection, id string) error {
	if !validCollection(collection) {
		return ErrUnknownCollection
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, collection), id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// List returns every record in a collection, oldest first.
func (s *Store) List(collection string) ([]Record, error) {
	if !validCollection(collection) {
		return nil, ErrUnknownCollection
	}
	rows, err := s.db.Query(fmt.Sprintf(`SELECT id, payload, updated_at FROM %s ORDER BY updated_at, id`, collection))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var payload string
		if err := rows.Scan(&rec.ID, &payload, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		rec.Payload = json.RawMessage(payload)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
