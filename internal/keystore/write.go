package keystore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveKey stores a key under rec.Name and returns the record with its
// assigned ID and timestamp filled in.
//
// rec.ID and rec.CreatedAt are assigned here (UUIDv7 / now, UTC);
// anything the caller put there is ignored. Names are save-once: a
// second save under the same name returns ErrDuplicateName and leaves
// the stored key untouched.
func (s *Store) SaveKey(ctx context.Context, rec Record) (Record, error) {
	if len(rec.Key) == 0 {
		return Record{}, ErrEmptyKey
	}

	blob, err := MarshalKey(rec.Key)
	if err != nil {
		return Record{}, fmt.Errorf("keystore: save %q: %w", rec.Name, err)
	}

	rec.ID = uuid.Must(uuid.NewV7()).String()
	rec.CreatedAt = time.Now().UTC().Truncate(time.Second)

	// ON CONFLICT DO NOTHING instead of surfacing the raw constraint
	// error: RowsAffected tells us whether the name was taken.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO keys
		(id, name, board_size, start_x, start_y, digest_hex, key_blob, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`,
		rec.ID,
		rec.Name,
		rec.BoardSize,
		rec.Start.X,
		rec.Start.Y,
		rec.DigestHex,
		blob,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Record{}, fmt.Errorf("keystore: save %q: %w", rec.Name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Record{}, fmt.Errorf("keystore: save %q: %w", rec.Name, err)
	}
	if n == 0 {
		return Record{}, fmt.Errorf("keystore: save %q: %w", rec.Name, ErrDuplicateName)
	}

	return rec, nil
}

// DeleteKey removes the key stored under name.
// Returns ErrKeyNotFound if nothing is stored under that name.
func (s *Store) DeleteKey(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM keys WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("keystore: delete %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("keystore: delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("keystore: delete %q: %w", name, ErrKeyNotFound)
	}

	return nil
}
