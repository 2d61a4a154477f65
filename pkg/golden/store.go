// Package golden pins pipeline output: it stores inputs with their expected
// normalized text in SQLite and checks a pipeline against them.
package golden

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no case has the requested ID.
var ErrNotFound = errors.New("golden case not found")

// Case is a row of the golden_cases table.
type Case struct {
	ID        int64
	Input     string
	Expected  string
	Note      string
	UpdatedAt int64
}

// Store manages the golden_cases SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open golden db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS golden_cases (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		input       TEXT NOT NULL UNIQUE,
		expected    TEXT NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		updated_at  INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create golden_cases table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a case, or replaces the expectation and note of the case with
// the same input. It returns the case ID.
func (s *Store) Add(input, expected, note string) (int64, error) {
	const q = `INSERT INTO golden_cases (input, expected, note, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(input) DO UPDATE SET
			expected = excluded.expected,
			note = excluded.note,
			updated_at = excluded.updated_at`
	if _, err := s.db.Exec(q, input, expected, note, time.Now().Unix()); err != nil {
		return 0, fmt.Errorf("add golden case: %w", err)
	}
	var id int64
	if err := s.db.QueryRow(`SELECT id FROM golden_cases WHERE input = ?`, input).Scan(&id); err != nil {
		return 0, fmt.Errorf("add golden case: %w", err)
	}
	return id, nil
}

// Get returns the case with the given ID.
func (s *Store) Get(id int64) (*Case, error) {
	var c Case
	err := s.db.QueryRow(`SELECT id, input, expected, note, updated_at
		FROM golden_cases WHERE id = ?`, id).
		Scan(&c.ID, &c.Input, &c.Expected, &c.Note, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get golden case %d: %w", id, err)
	}
	return &c, nil
}

// List returns all cases ordered by ID.
func (s *Store) List() ([]Case, error) {
	rows, err := s.db.Query(`SELECT id, input, expected, note, updated_at
		FROM golden_cases ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list golden cases: %w", err)
	}
	defer rows.Close()

	var cases []Case
	for rows.Next() {
		var c Case
		if err := rows.Scan(&c.ID, &c.Input, &c.Expected, &c.Note, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan golden case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// SetExpected rewrites the expectation of a case.
func (s *Store) SetExpected(id int64, expected string) error {
	res, err := s.db.Exec(`UPDATE golden_cases SET expected = ?, updated_at = ? WHERE id = ?`,
		expected, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("set expected for %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Delete removes a case.
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM golden_cases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete golden case %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}
