package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance run of the derivation pipeline.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario pins down.
	Description string `yaml:"description"`

	// BoardSize is N for the N×N board.
	BoardSize int `yaml:"board_size"`

	// Passphrase seeds the board. May be empty (the empty passphrase is
	// a documented, accepted input).
	Passphrase string `yaml:"passphrase"`

	// Normalize applies NFC normalization to the passphrase before
	// hashing, mirroring the CLI's --normalize flag.
	Normalize bool `yaml:"normalize,omitempty"`

	// MaxNodes bounds the search's node expansions. Zero means
	// unbounded.
	MaxNodes int `yaml:"max_nodes,omitempty"`

	// Messages are plaintexts to encrypt and decrypt with the derived
	// key. Ignored when ExpectFailure is set.
	Messages []string `yaml:"messages,omitempty"`

	// ExpectFailure marks scenarios whose search must fail; the failure
	// code is snapshotted instead of a key.
	ExpectFailure bool `yaml:"expect_failure,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos surface as load errors, not silently ignored
// configuration.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &sc, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name for
// deterministic test ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func validateScenario(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sc.BoardSize < 1 {
		return fmt.Errorf("board_size must be >= 1, got %d", sc.BoardSize)
	}
	if sc.ExpectFailure && len(sc.Messages) > 0 {
		return fmt.Errorf("messages make no sense with expect_failure")
	}
	return nil
}
