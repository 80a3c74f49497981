package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS solutions (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	words   TEXT NOT NULL,
	skipped TEXT NOT NULL
)`

// SQLite replaces the contents of a solutions table inside one transaction,
// committed on Close and rolled back on Abort. An aborted run leaves the
// previous run's rows in place.
type SQLite struct {
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
}

// OpenSQLite opens (or creates) the database at path and starts the
// transaction that replaces any previous solutions.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &SQLite{db: db}
	if err := s.prepare(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) prepare(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM solutions"); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO solutions (words, skipped) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	s.tx = tx
	s.stmt = stmt
	return nil
}

func (s *SQLite) Write(r Record) error {
	_, err := s.stmt.Exec(strings.Join(r.Words, ","), r.Skipped)
	return err
}

func (s *SQLite) Close() error {
	defer s.db.Close()
	s.stmt.Close()
	return s.tx.Commit()
}

// Abort rolls back this run. A cancelled context has already rolled the
// transaction back.
func (s *SQLite) Abort() error {
	defer s.db.Close()
	s.stmt.Close()
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// ReadSQLite returns the stored lines in insertion order.
func ReadSQLite(ctx context.Context, path string) ([]string, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	rows, err := db.QueryContext(ctx, "SELECT words FROM solutions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	lines := []string{}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
