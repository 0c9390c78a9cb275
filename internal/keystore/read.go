package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LoadKey returns the record stored under name.
// Returns ErrKeyNotFound if nothing is stored under that name.
func (s *Store) LoadKey(ctx context.Context, name string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, board_size, start_x, start_y, digest_hex, key_blob, created_at
		FROM keys
		WHERE name = ?
	`, name)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("keystore: load %q: %w", name, ErrKeyNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("keystore: load %q: %w", name, err)
	}

	return rec, nil
}

// ListKeys returns all stored records ordered by creation time, oldest
// first, with name as the deterministic tie-break.
//
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListKeys(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, board_size, start_x, start_y, digest_hex, key_blob, created_at
		FROM keys
		ORDER BY created_at ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("keystore: list: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("keystore: list: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("keystore: list: %w", err)
	}

	return records, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec       Record
		blob      []byte
		createdAt string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.BoardSize,
		&rec.Start.X,
		&rec.Start.Y,
		&rec.DigestHex,
		&blob,
		&createdAt,
	); err != nil {
		return Record{}, err
	}

	key, err := UnmarshalKey(blob)
	if err != nil {
		return Record{}, err
	}
	rec.Key = key

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts

	return rec, nil
}
