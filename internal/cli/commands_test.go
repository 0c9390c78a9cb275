package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decodeResponse parses a JSON-format CLI response.
func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func TestKeygen_Text(t *testing.T) {
	out, err := execute(t, "keygen", "-n", "8", "samplepassphrase")
	require.NoError(t, err)

	assert.Contains(t, out, "0be9715c7b0f0a0e476319ecad4c446fa8f157482e9d200240278c710dbaf4d0")
	assert.Contains(t, out, "(3, 1)")
	assert.Contains(t, out, "Key length:  64")
	// The key sequence starts at the start cell's value, 3*8+1 = 25.
	assert.Contains(t, out, "Key:         25 8 2 12")
}

func TestKeygen_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "keygen", "-n", "8", "samplepassphrase")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0be9715c7b0f0a0e476319ecad4c446fa8f157482e9d200240278c710dbaf4d0", data["digest_hex"])
	assert.Equal(t, float64(64), data["key_length"])

	start, ok := data["start"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), start["x"])
	assert.Equal(t, float64(1), start["y"])
}

func TestKeygen_SearchFailureExitCode(t *testing.T) {
	out, err := execute(t, "keygen", "-n", "4", "samplepassphrase")
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "SEARCH_FAILURE")
}

func TestKeygen_TooSmallBoard(t *testing.T) {
	_, err := execute(t, "keygen", "-n", "2", "whatever")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestKeygen_SaveRequiresBothFlags(t *testing.T) {
	_, err := execute(t, "keygen", "--db", filepath.Join(t.TempDir(), "k.db"), "pass")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestKeygenEncryptDecrypt_StoreRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "keys.db")

	out, err := execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "samplepassphrase")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved as "alpha"`)

	cipherOut, err := execute(t, "encrypt", "--db", db, "--name", "alpha", "AB")
	require.NoError(t, err)

	// Key starts 25, 8 → 0x41^25 = 0x58, 0x42^8 = 0x4a.
	cipherHex := strings.TrimSpace(cipherOut)
	assert.Equal(t, "58 4a", cipherHex)

	plainOut, err := execute(t, "decrypt", "--db", db, "--name", "alpha", cipherHex)
	require.NoError(t, err)
	assert.Equal(t, "AB", strings.TrimSpace(plainOut))
}

func TestEncryptDecrypt_KeyFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "keys.db")
	keyFile := filepath.Join(dir, "alpha.bin")

	_, err := execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "samplepassphrase")
	require.NoError(t, err)
	_, err = execute(t, "keys", "export", "--db", db, "alpha", keyFile)
	require.NoError(t, err)

	cipherOut, err := execute(t, "encrypt", "--key-file", keyFile, "attack at dawn")
	require.NoError(t, err)

	plainOut, err := execute(t, "decrypt", "--key-file", keyFile, strings.TrimSpace(cipherOut))
	require.NoError(t, err)
	assert.Equal(t, "attack at dawn", strings.TrimSpace(plainOut))
}

func TestEncrypt_RequiresKeySource(t *testing.T) {
	_, err := execute(t, "encrypt", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "key source")
}

func TestEncrypt_RejectsConflictingSources(t *testing.T) {
	_, err := execute(t, "encrypt",
		"--db", "x.db", "--name", "alpha", "--key-file", "k.bin", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEncrypt_MissingKeyName(t *testing.T) {
	db := filepath.Join(t.TempDir(), "keys.db")
	_, err := execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "pass")
	require.NoError(t, err)

	_, err = execute(t, "encrypt", "--db", db, "--name", "missing", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestDecrypt_InvalidHex(t *testing.T) {
	db := filepath.Join(t.TempDir(), "keys.db")
	_, err := execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "pass")
	require.NoError(t, err)

	_, err = execute(t, "decrypt", "--db", db, "--name", "alpha", "zz qq")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestKeys_ListRmLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "keys.db")

	out, err := execute(t, "keys", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No keys stored.")

	_, err = execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "p1")
	require.NoError(t, err)
	_, err = execute(t, "keygen", "-n", "8", "--db", db, "--name", "beta", "p2")
	require.NoError(t, err)

	out, err = execute(t, "keys", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")

	_, err = execute(t, "keys", "rm", "--db", db, "alpha")
	require.NoError(t, err)

	out, err = execute(t, "keys", "list", "--db", db)
	require.NoError(t, err)
	assert.NotContains(t, out, "alpha")

	_, err = execute(t, "keys", "rm", "--db", db, "alpha")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestKeys_DuplicateNameRejected(t *testing.T) {
	db := filepath.Join(t.TempDir(), "keys.db")

	_, err := execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "p1")
	require.NoError(t, err)

	_, err = execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "p2")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestKeys_ImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "keys.db")
	keyFile := filepath.Join(dir, "alpha.bin")

	_, err := execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "samplepassphrase")
	require.NoError(t, err)
	_, err = execute(t, "keys", "export", "--db", db, "alpha", keyFile)
	require.NoError(t, err)
	_, err = execute(t, "keys", "import", "--db", db, "copy", keyFile)
	require.NoError(t, err)

	// The imported copy must decrypt what the original encrypted.
	cipherOut, err := execute(t, "encrypt", "--db", db, "--name", "alpha", "AB")
	require.NoError(t, err)
	plainOut, err := execute(t, "decrypt", "--db", db, "--name", "copy", strings.TrimSpace(cipherOut))
	require.NoError(t, err)
	assert.Equal(t, "AB", strings.TrimSpace(plainOut))
}

func TestReport(t *testing.T) {
	db := filepath.Join(t.TempDir(), "keys.db")

	_, err := execute(t, "keygen", "-n", "8", "--db", db, "--name", "alpha", "samplepassphrase")
	require.NoError(t, err)

	out, err := execute(t, "report", "--db", db, "alpha")
	require.NoError(t, err)

	assert.Contains(t, out, "=== Encryption Key Report ===")
	assert.Contains(t, out, "Key Length:        64")
	assert.Contains(t, out, "0be9715c7b0f0a0e476319ecad4c446fa8f157482e9d200240278c710dbaf4d0")
	assert.Contains(t, out, "Starting Position: (3, 1)")
}

func TestReport_MissingKey(t *testing.T) {
	db := filepath.Join(t.TempDir(), "keys.db")
	_, err := execute(t, "report", "--db", db, "ghost")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestBench(t *testing.T) {
	out, err := execute(t, "bench")
	require.NoError(t, err)

	assert.Contains(t, out, "Key generation:")
	assert.Contains(t, out, "Message encryption:")
	assert.Contains(t, out, "Message decryption:")
	assert.Contains(t, out, "(64 nodes)")
}

func TestBench_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "bench")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(64), data["nodes_expanded"])
}

func TestOutputFormatter_ErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Error(CodeInvalidKey, "key must not be empty", nil))

	resp := decodeResponse(t, buf.String())
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidKey, resp.Error.Code)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
