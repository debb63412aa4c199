package repository

import (
	"asset-registry-api/internal/model"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostgresStore keeps each record as a JSONB document next to its id and
// timestamps. The id, created_at and updated_at columns are authoritative;
// the copies inside the document are overwritten on read.
type PostgresStore[T any, P recordPtr[T]] struct {
	DB    *sql.DB
	table string
}

// NewPostgresStore creates a store over table. The table must exist; see
// database.EnsureSchema.
func NewPostgresStore[T any, P recordPtr[T]](db *sql.DB, table string) *PostgresStore[T, P] {
	return &PostgresStore[T, P]{DB: db, table: table}
}

// NewEmployeePostgresStore creates the Postgres employee store.
func NewEmployeePostgresStore(db *sql.DB) EmployeeStore {
	return NewPostgresStore[model.Employee](db, EmployeeTable)
}

// NewSystemPostgresStore creates the Postgres system store.
func NewSystemPostgresStore(db *sql.DB) SystemStore {
	return NewPostgresStore[model.System](db, SystemTable)
}

// postgres keeps microseconds
func pgNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// List retrieves every record in insertion order.
func (s *PostgresStore[T, P]) List(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, document, created_at, updated_at
		FROM %s
		ORDER BY seq`, s.table)

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		rec, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Get retrieves a single record by id.
func (s *PostgresStore[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, document, created_at, updated_at
		FROM %s
		WHERE id = $1`, s.table)

	rec, err := s.scan(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Create inserts record under a new id.
func (s *PostgresStore[T, P]) Create(ctx context.Context, record T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := pgNow()
	P(&record).SetID(uuid.New())
	P(&record).SetTimestamps(now, now)

	doc, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`, s.table)

	_, err = s.DB.ExecContext(ctx, query, P(&record).GetID(), doc, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", s.table, err)
	}

	return &record, nil
}

// Replace overwrites the document stored under id.
func (s *PostgresStore[T, P]) Replace(ctx context.Context, id uuid.UUID, record T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := pgNow()
	P(&record).SetID(id)

	doc, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET document = $1, updated_at = $2
		WHERE id = $3
		RETURNING created_at`, s.table)

	var createdAt time.Time
	if err := s.DB.QueryRowContext(ctx, query, doc, now, id).Scan(&createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update %s: %w", s.table, err)
	}

	P(&record).SetTimestamps(createdAt.UTC(), now)
	return &record, nil
}

// Delete removes the record stored under id.
func (s *PostgresStore[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)

	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", s.table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (s *PostgresStore[T, P]) scan(row scanner) (*T, error) {
	var (
		id                   uuid.UUID
		doc                  []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &doc, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan %s row: %w", s.table, err)
	}

	var rec T
	if err := json.Unmarshal(doc, P(&rec)); err != nil {
		return nil, fmt.Errorf("failed to decode %s document %s: %w", s.table, id, err)
	}
	P(&rec).SetID(id)
	P(&rec).SetTimestamps(createdAt.UTC(), updatedAt.UTC())
	return &rec, nil
}
