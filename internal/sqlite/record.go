package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/seldt/wellspring/internal/repository"
	"github.com/seldt/wellspring/internal/store"
)

// RecordStore implements repository.RecordStore for SQLite
type RecordStore struct {
	db *DB
}

// NewRecordStore creates a new RecordStore
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// Create inserts a new record. Records carry a per-owner creation sequence
// so listing preserves creation order for tie-breaking downstream.
func (s *RecordStore) Create(ctx context.Context, owner string, rec *store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO activity_seq (owner, seq) VALUES (?, 1)
		ON CONFLICT(owner) DO UPDATE SET seq = seq + 1
		RETURNING seq
	`, owner).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to advance sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO activities (
			id, owner, title, description, type_ref,
			start_time, end_time, status, metadata, created_seq
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		owner,
		rec.Title,
		rec.Description,
		rec.TypeRef,
		rec.StartTime,
		rec.EndTime,
		rec.Status,
		string(meta),
		seq,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to create record: %w", err)
	}

	return tx.Commit()
}

// Get retrieves a record by ID
func (s *RecordStore) Get(ctx context.Context, owner, id string) (*store.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, title, description, type_ref,
		       start_time, end_time, status, metadata
		FROM activities
		WHERE id = ? AND owner = ?
	`, id, owner)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

// Update overwrites a record by id. Missing rows map to ErrNotFound.
func (s *RecordStore) Update(ctx context.Context, owner string, rec *store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE activities
		SET title = ?, description = ?, type_ref = ?,
		    start_time = ?, end_time = ?, status = ?, metadata = ?
		WHERE id = ? AND owner = ?
	`,
		rec.Title,
		rec.Description,
		rec.TypeRef,
		rec.StartTime,
		rec.EndTime,
		rec.Status,
		string(meta),
		rec.ID,
		owner,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a record by id. Missing rows map to ErrNotFound; callers
// deciding that deletes of unknown ids are no-ops do so above this layer.
func (s *RecordStore) Delete(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM activities WHERE id = ? AND owner = ?
	`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all of an owner's records in creation order.
func (s *RecordStore) List(ctx context.Context, owner string) ([]store.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, title, description, type_ref,
		       start_time, end_time, status, metadata
		FROM activities
		WHERE owner = ?
		ORDER BY created_seq ASC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return out, nil
}

// SetHashID patches the cached legacy-id field inside the metadata column.
func (s *RecordStore) SetHashID(ctx context.Context, owner, id string, hashID int64) error {
	rec, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	rec.Metadata.HashID = &hashID
	return s.Update(ctx, owner, rec)
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*store.Record, error) {
	var rec store.Record
	var meta string
	err := row.Scan(
		&rec.ID,
		&rec.Owner,
		&rec.Title,
		&rec.Description,
		&rec.TypeRef,
		&rec.StartTime,
		&rec.EndTime,
		&rec.Status,
		&meta,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(meta), &rec.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata for %s: %w", rec.ID, err)
	}
	return &rec, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
