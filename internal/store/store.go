// Package store archives planned toolpaths in a sqlite database so jobs can
// be listed and reloaded later. The payload is the structured record format,
// identical to what Save writes to disk.
package store

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/microfab-data/lithopath/internal/toolpath"
)

// Record describes one archived toolpath.
type Record struct {
	ID           string
	Name         string
	NumPoints    int
	NumLayers    int
	TotalLength  float64
	TimeEstimate float64
	CreatedAt    time.Time
}

// Store is a sqlite-backed toolpath archive.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary initializes) the archive at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open toolpath archive: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS toolpaths (
			id                TEXT PRIMARY KEY,
			name              TEXT,
			num_points        BIGINT,
			num_layers        BIGINT,
			total_length      DOUBLE,
			time_estimate     DOUBLE,
			payload           TEXT,
			created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize toolpath archive: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the archive.
func (s *Store) Close() error { return s.db.Close() }

// Put archives the toolpath under the given name and returns the new record
// ID.
func (s *Store) Put(name string, tp *toolpath.Toolpath) (string, error) {
	var payload bytes.Buffer
	if err := tp.EncodeJSON(&payload); err != nil {
		return "", fmt.Errorf("archive toolpath %q: %w", name, err)
	}

	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO toolpaths (id, name, num_points, num_layers, total_length, time_estimate, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, tp.NumPoints(), tp.Layers, tp.TotalLength(), tp.TimeEstimate(), payload.String(),
	)
	if err != nil {
		return "", fmt.Errorf("archive toolpath %q: %w", name, err)
	}
	return id, nil
}

// Get reloads an archived toolpath by record ID.
func (s *Store) Get(id string) (*toolpath.Toolpath, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM toolpaths WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("toolpath %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load archived toolpath %s: %w", id, err)
	}
	tp, err := toolpath.DecodeJSON(strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("decode archived toolpath %s: %w", id, err)
	}
	return tp, nil
}

// List returns every archived record, newest first.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, name, num_points, num_layers, total_length, time_estimate, created_at
		FROM toolpaths ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list archived toolpaths: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.NumPoints, &r.NumLayers,
			&r.TotalLength, &r.TimeEstimate, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan archived toolpath: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete removes an archived record.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM toolpaths WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete archived toolpath %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("toolpath %s not found", id)
	}
	return nil
}
