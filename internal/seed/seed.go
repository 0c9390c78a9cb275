// Package seed derives the deterministic inputs of a tour search from a
// passphrase: a SHA-256 digest, a row-major board, and the knight's
// starting cell.
//
// Seeding is a pure function: identical (passphrase, size) inputs always
// yield an identical digest, board and start coordinate, and therefore
// an identical key downstream.
//
// KNOWN WEAKNESS, reproduced deliberately: the start coordinate depends
// only on digest bytes 0 and 1. Two passphrases whose digests agree on
// those two bytes produce the same start cell and hence the same key,
// no matter how much the rest of the digests differ. Callers that need
// stronger derivation must redefine this function, not patch around it;
// existing stored keys depend on the current behavior.
package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/tourcrypt/tourcrypt/internal/board"
)

// DigestLength is the byte length of the passphrase digest (SHA-256).
const DigestLength = sha256.Size

// Seed bundles everything a tour search needs, derived from one
// passphrase submission. Values are immutable once created.
type Seed struct {
	// Digest is the SHA-256 hash of the raw passphrase bytes.
	Digest [DigestLength]byte

	// Board is the row-major value grid the tour walks over.
	Board *board.Board

	// Start is the knight's starting cell:
	// (Digest[0] mod N, Digest[1] mod N).
	Start board.Coordinate
}

// New seeds a board of the given size from a passphrase.
//
// The passphrase is hashed as raw bytes; an empty passphrase is
// accepted and hashes to the well-known empty-input SHA-256 digest.
// Size must be at least 1.
func New(passphrase []byte, size int) (*Seed, error) {
	b, err := board.New(size)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	digest := sha256.Sum256(passphrase)

	return &Seed{
		Digest: digest,
		Board:  b,
		Start: board.Coordinate{
			X: int(digest[0]) % size,
			Y: int(digest[1]) % size,
		},
	}, nil
}

// DigestHex returns the 64-character lowercase hex rendering of the
// digest.
func (s *Seed) DigestHex() string {
	return hex.EncodeToString(s.Digest[:])
}

// Normalize returns the NFC normalization of a passphrase.
//
// Seeding itself always hashes raw bytes; normalization is strictly
// opt-in at the boundary (the CLI's --normalize flag) for users whose
// platforms disagree on the byte encoding of composed characters.
// Applying it changes the digest for any passphrase that is not already
// NFC, so it must be used consistently between encrypt and decrypt.
func Normalize(passphrase string) string {
	return norm.NFC.String(passphrase)
}
