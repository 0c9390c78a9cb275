package harness

import (
	"errors"
	"fmt"

	"github.com/tourcrypt/tourcrypt/internal/keystream"
	"github.com/tourcrypt/tourcrypt/internal/seed"
	"github.com/tourcrypt/tourcrypt/internal/tour"
)

// Result is the deterministic snapshot of one scenario run. Field order
// matters: it is the golden file layout.
type Result struct {
	ScenarioName string `json:"scenario_name"`
	BoardSize    int    `json:"board_size"`
	DigestHex    string `json:"digest_hex"`
	Start        []int  `json:"start"`

	// KeyLength and Key are zero/null when the search failed.
	KeyLength int      `json:"key_length"`
	Key       tour.Key `json:"key"`

	// Messages holds the encrypt/decrypt round trips, success only.
	Messages []MessageResult `json:"messages,omitempty"`

	// Failure is the search error code for expect_failure scenarios.
	Failure string `json:"failure,omitempty"`
}

// MessageResult is one plaintext's trip through the keystream.
type MessageResult struct {
	Plaintext string `json:"plaintext"`
	CipherHex string `json:"cipher_hex"`
	Decrypted string `json:"decrypted"`
}

// Run executes a scenario: seed, search, then encrypt and decrypt every
// message. An unexpected search failure (or an expected one that did
// not happen) is an error; an expected failure is captured in the
// result.
func Run(sc *Scenario) (*Result, error) {
	passphrase := sc.Passphrase
	if sc.Normalize {
		passphrase = seed.Normalize(passphrase)
	}

	sd, err := seed.New([]byte(passphrase), sc.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	result := &Result{
		ScenarioName: sc.Name,
		BoardSize:    sc.BoardSize,
		DigestHex:    sd.DigestHex(),
		Start:        []int{sd.Start.X, sd.Start.Y},
	}

	var opts []tour.Option
	if sc.MaxNodes > 0 {
		opts = append(opts, tour.WithMaxNodes(sc.MaxNodes))
	}

	key, _, err := tour.Search(sd.Board, sd.Start, opts...)
	if err != nil {
		var se *tour.SearchError
		if !errors.As(err, &se) || !sc.ExpectFailure {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		result.Failure = string(se.Code)
		return result, nil
	}
	if sc.ExpectFailure {
		return nil, fmt.Errorf("scenario %s: expected a search failure, got a %d-element key", sc.Name, len(key))
	}

	result.KeyLength = len(key)
	result.Key = key

	for _, msg := range sc.Messages {
		cipher, err := keystream.XORTransform([]byte(msg), key)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: encrypt: %w", sc.Name, err)
		}
		plain, err := keystream.XORTransform(cipher, key)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: decrypt: %w", sc.Name, err)
		}
		result.Messages = append(result.Messages, MessageResult{
			Plaintext: msg,
			CipherHex: keystream.EncodeHex(cipher),
			Decrypted: string(plain),
		})
	}

	return result, nil
}
