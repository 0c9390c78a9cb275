package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SampleScenario(t *testing.T) {
	sc := &Scenario{
		Name:       "inline-sample",
		BoardSize:  8,
		Passphrase: "samplepassphrase",
		Messages:   []string{"AB"},
	}

	result, err := Run(sc)
	require.NoError(t, err)

	assert.Equal(t, "inline-sample", result.ScenarioName)
	assert.Equal(t,
		"0be9715c7b0f0a0e476319ecad4c446fa8f157482e9d200240278c710dbaf4d0",
		result.DigestHex)
	assert.Equal(t, []int{3, 1}, result.Start)
	assert.Equal(t, 64, result.KeyLength)
	assert.Len(t, result.Key, 64)
	assert.Empty(t, result.Failure)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, "AB", result.Messages[0].Plaintext)
	assert.Equal(t, "AB", result.Messages[0].Decrypted, "round trip restores the plaintext")
	assert.NotEqual(t, "AB", result.Messages[0].CipherHex)
}

func TestRun_ExpectedFailureIsCaptured(t *testing.T) {
	sc := &Scenario{
		Name:          "inline-no-tour",
		BoardSize:     4,
		Passphrase:    "samplepassphrase",
		ExpectFailure: true,
	}

	result, err := Run(sc)
	require.NoError(t, err)

	assert.Equal(t, "NO_TOUR", result.Failure)
	assert.Nil(t, result.Key)
	assert.Zero(t, result.KeyLength)
	assert.Empty(t, result.Messages)
}

func TestRun_UnexpectedFailureIsAnError(t *testing.T) {
	sc := &Scenario{
		Name:       "inline-unexpected",
		BoardSize:  4,
		Passphrase: "samplepassphrase",
	}

	_, err := Run(sc)
	require.Error(t, err)
}

func TestRun_ExpectedFailureThatSucceedsIsAnError(t *testing.T) {
	sc := &Scenario{
		Name:          "inline-should-fail",
		BoardSize:     8,
		Passphrase:    "samplepassphrase",
		ExpectFailure: true,
	}

	_, err := Run(sc)
	require.Error(t, err)
}

func TestRun_NormalizeChangesDigest(t *testing.T) {
	decomposed := "café"

	raw, err := Run(&Scenario{Name: "raw", BoardSize: 8, Passphrase: decomposed})
	require.NoError(t, err)

	normalized, err := Run(&Scenario{Name: "nfc", BoardSize: 8, Passphrase: decomposed, Normalize: true})
	require.NoError(t, err)

	assert.NotEqual(t, raw.DigestHex, normalized.DigestHex)
}
