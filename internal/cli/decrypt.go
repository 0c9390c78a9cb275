package cli

import (
	"github.com/spf13/cobra"

	"github.com/tourcrypt/tourcrypt/internal/keystream"
)

// DecryptOptions holds flags for the decrypt command.
type DecryptOptions struct {
	*RootOptions
	KeySourceOptions
}

// decryptResult is the decrypt command's JSON payload.
type decryptResult struct {
	Plaintext string `json:"plaintext"`
	Length    int    `json:"length"`
}

// NewDecryptCommand creates the decrypt command.
func NewDecryptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecryptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decrypt <hex-message>",
		Short: "Decrypt a hex-rendered message",
		Long: `Decrypt a ciphertext produced by 'encrypt'.

XOR is self-inverse, so decryption is the same transform with the same
key; the input is the space-separated hex rendering encrypt printed.

Example:
  tourcrypt decrypt --db ./keys.db --name alpha "00 11 ab"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecrypt(opts, args[0], cmd)
		},
	}

	addKeySourceFlags(cmd, &opts.KeySourceOptions)

	return cmd
}

func runDecrypt(opts *DecryptOptions, hexMessage string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	key, err := resolveKey(cmd, &opts.KeySourceOptions)
	if err != nil {
		return err
	}

	cipher, err := keystream.DecodeHex(hexMessage)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid hex input", err)
	}

	plain, err := keystream.XORTransform(cipher, key)
	if err != nil {
		_ = f.Error(CodeInvalidKey, err.Error(), nil)
		return WrapExitError(ExitFailure, "decryption failed", err)
	}

	result := decryptResult{
		Plaintext: string(plain),
		Length:    len(plain),
	}
	return f.SuccessText(result.Plaintext, result)
}
