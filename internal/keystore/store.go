package keystore

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tourcrypt/tourcrypt/internal/board"
)

//go:embed schema.sql
var schemaSQL string

// Sentinel errors for key store operations.
var (
	// ErrKeyNotFound indicates no stored key matches the given name.
	ErrKeyNotFound = errors.New("keystore: key not found")
	// ErrDuplicateName indicates a key is already stored under the name.
	ErrDuplicateName = errors.New("keystore: a key with that name already exists")
	// ErrEmptyKey indicates an attempt to store key material of length zero.
	ErrEmptyKey = errors.New("keystore: key must not be empty")
)

// Record is one stored key plus the metadata describing its origin.
type Record struct {
	// ID is a UUIDv7, assigned at save time.
	ID string

	// Name is the caller-chosen unique name.
	Name string

	// BoardSize is N for the N×N board the key was derived on.
	BoardSize int

	// Start is the knight's starting cell.
	Start board.Coordinate

	// DigestHex is the 64-char hex SHA-256 of the source passphrase.
	// Empty for keys imported from raw binary files, where no
	// provenance is available.
	DigestHex string

	// Key is the ordered key material.
	Key []int

	// CreatedAt is the save timestamp (UTC).
	CreatedAt time.Time
}

// Store provides durable storage for named keys.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// against an existing database.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("keystore: open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("keystore: connect: %w", err)
	}

	// SQLite supports one writer at a time; a single pooled connection
	// avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("keystore: apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("keystore: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}
