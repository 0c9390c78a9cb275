package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: demo
description: round trip
board_size: 8
passphrase: samplepassphrase
messages:
  - AB
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", sc.Name)
	assert.Equal(t, 8, sc.BoardSize)
	assert.Equal(t, "samplepassphrase", sc.Passphrase)
	assert.Equal(t, []string{"AB"}, sc.Messages)
	assert.False(t, sc.ExpectFailure)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: demo
board_size: 8
passprase: typo
`)

	_, err := LoadScenario(path)
	require.Error(t, err, "typos must fail loudly, not parse as defaults")
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
board_size: 8
passphrase: x
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_InvalidBoardSize(t *testing.T) {
	path := writeScenario(t, `
name: demo
board_size: 0
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_MessagesWithExpectFailure(t *testing.T) {
	path := writeScenario(t, `
name: demo
board_size: 4
expect_failure: true
messages:
  - AB
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadScenarios_ReadsFixtureDir(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	// Sorted by file name, and every scenario carries a unique name.
	seen := map[string]bool{}
	for _, sc := range scenarios {
		assert.False(t, seen[sc.Name], "duplicate scenario name %q", sc.Name)
		seen[sc.Name] = true
	}
	assert.True(t, seen["sample-8x8"])
	assert.True(t, seen["no-tour-4x4"])
}
