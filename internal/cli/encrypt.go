package cli

import (
	"github.com/spf13/cobra"

	"github.com/tourcrypt/tourcrypt/internal/keystream"
)

// EncryptOptions holds flags for the encrypt command.
type EncryptOptions struct {
	*RootOptions
	KeySourceOptions
}

// encryptResult is the encrypt command's JSON payload.
type encryptResult struct {
	CipherHex string `json:"cipher_hex"`
	Length    int    `json:"length"`
}

// NewEncryptCommand creates the encrypt command.
func NewEncryptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncryptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encrypt <message>",
		Short: "Encrypt a message with a stored or file-based key",
		Long: `Encrypt a message by XORing it against the keystream.

The ciphertext is printed as two hex digits per byte, space-separated,
in the same rendering 'decrypt' accepts back.

Example:
  tourcrypt encrypt --db ./keys.db --name alpha "attack at dawn"
  tourcrypt encrypt --key-file ./alpha.bin "attack at dawn"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncrypt(opts, args[0], cmd)
		},
	}

	addKeySourceFlags(cmd, &opts.KeySourceOptions)

	return cmd
}

func runEncrypt(opts *EncryptOptions, message string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	key, err := resolveKey(cmd, &opts.KeySourceOptions)
	if err != nil {
		return err
	}

	extended, err := keystream.Extend(key, len(message))
	if err != nil {
		_ = f.Error(CodeInvalidKey, err.Error(), nil)
		return WrapExitError(ExitFailure, "encryption failed", err)
	}

	cipher, err := keystream.XORTransform([]byte(message), extended)
	if err != nil {
		_ = f.Error(CodeInvalidKey, err.Error(), nil)
		return WrapExitError(ExitFailure, "encryption failed", err)
	}

	result := encryptResult{
		CipherHex: keystream.EncodeHex(cipher),
		Length:    len(cipher),
	}
	return f.SuccessText(result.CipherHex, result)
}
