// Package archive persists paystub records into a SQLite database, one row
// per (source file, field).
package archive

import (
	"context"
	"database/sql"
	"fmt"

	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS paystub_fields (
	source_file TEXT NOT NULL,
	pay_date    TEXT NOT NULL DEFAULT '',
	field       TEXT NOT NULL,
	value       TEXT NOT NULL,
	PRIMARY KEY (source_file, field)
)`

const upsert = `INSERT OR REPLACE INTO paystub_fields (source_file, pay_date, field, value) VALUES (?, ?, ?, ?)`

// Store is a SQLite-backed record archive.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts every field of every record except Source File, in a single
// transaction. It returns the number of rows written.
func (s *Store) Save(ctx context.Context, records []models.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	written := 0
	for _, r := range records {
		for _, field := range r.Fields() {
			if field == models.FieldSourceFile {
				continue
			}
			if _, err := stmt.ExecContext(ctx, r.SourceFile(), r.PayDate(), field, r[field]); err != nil {
				_ = tx.Rollback()
				return 0, fmt.Errorf("failed to store %s of %s: %w", field, r.SourceFile(), err)
			}
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	total, err := s.Count(ctx)
	if err != nil {
		return written, err
	}
	s.logger.Info("Archived paystub fields",
		logging.Field{Key: logging.FieldCount, Value: written},
		logging.Field{Key: logging.FieldTotal, Value: total})
	return written, nil
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM paystub_fields").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// Load reads back the records stored for sourceFile.
func (s *Store) Load(ctx context.Context, sourceFile string) (models.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT field, value FROM paystub_fields WHERE source_file = ?", sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", sourceFile, err)
	}
	defer func() { _ = rows.Close() }()

	record := models.NewRecord(sourceFile)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		record[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(record) == 1 {
		return nil, sql.ErrNoRows
	}
	return record, nil
}
