package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tourcrypt/tourcrypt/internal/keystore"
)

// KeysOptions holds flags shared by the keys subcommands.
type KeysOptions struct {
	*RootOptions
	Database string
}

// keySummary is one row of the keys list payload. The key material
// itself is deliberately omitted; 'report' shows it on request.
type keySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BoardSize int    `json:"board_size"`
	KeyLength int    `json:"key_length"`
	DigestHex string `json:"digest_hex,omitempty"`
	CreatedAt string `json:"created_at"`
}

// NewKeysCommand creates the keys command group.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeysOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage stored keys",
		Long: `Manage the key store.

Keys live in a SQLite database and are addressed by name. 'export' and
'import' bridge to the raw binary file format: the key elements as
little-endian 32-bit integers, nothing else.`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the key store (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newKeysListCommand(opts))
	cmd.AddCommand(newKeysRmCommand(opts))
	cmd.AddCommand(newKeysExportCommand(opts))
	cmd.AddCommand(newKeysImportCommand(opts))

	return cmd
}

func newKeysListCommand(opts *KeysOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored keys",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)

			store, err := keystore.Open(opts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open key store", err)
			}
			defer store.Close()

			records, err := store.ListKeys(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list keys", err)
			}

			summaries := make([]keySummary, len(records))
			for i, rec := range records {
				summaries[i] = keySummary{
					ID:        rec.ID,
					Name:      rec.Name,
					BoardSize: rec.BoardSize,
					KeyLength: len(rec.Key),
					DigestHex: rec.DigestHex,
					CreatedAt: rec.CreatedAt.Format(time.RFC3339),
				}
			}

			return f.SuccessText(keysListText(summaries), summaries)
		},
	}
}

func newKeysRmCommand(opts *KeysOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <name>",
		Short:         "Delete a stored key",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			name := args[0]

			store, err := keystore.Open(opts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open key store", err)
			}
			defer store.Close()

			if err := store.DeleteKey(cmd.Context(), name); err != nil {
				if errors.Is(err, keystore.ErrKeyNotFound) {
					return WrapExitError(ExitFailure, "no such key", err)
				}
				return WrapExitError(ExitCommandError, "failed to delete key", err)
			}

			return f.SuccessText(
				fmt.Sprintf("Deleted key %q", name),
				map[string]string{"deleted": name},
			)
		},
	}
}

func newKeysExportCommand(opts *KeysOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "export <name> <file>",
		Short:         "Export a stored key to a raw binary file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			name, path := args[0], args[1]

			store, err := keystore.Open(opts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open key store", err)
			}
			defer store.Close()

			rec, err := store.LoadKey(cmd.Context(), name)
			if errors.Is(err, keystore.ErrKeyNotFound) {
				return WrapExitError(ExitFailure, "no such key", err)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load key", err)
			}

			if err := keystore.ExportFile(path, rec.Key); err != nil {
				return WrapExitError(ExitCommandError, "failed to write key file", err)
			}

			return f.SuccessText(
				fmt.Sprintf("Exported key %q to %s (%d elements)", name, path, len(rec.Key)),
				map[string]any{"name": name, "file": path, "key_length": len(rec.Key)},
			)
		},
	}
}

func newKeysImportCommand(opts *KeysOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Import a raw binary key file into the store",
		Long: `Import a raw binary key file into the store.

Raw files carry no provenance, so the imported record has no digest and
board size 0. The key material round-trips exactly.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			name, path := args[0], args[1]

			key, err := keystore.ImportFile(path)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read key file", err)
			}

			store, err := keystore.Open(opts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open key store", err)
			}
			defer store.Close()

			rec, err := store.SaveKey(cmd.Context(), keystore.Record{
				Name: name,
				Key:  key,
			})
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to save key", err)
			}

			return f.SuccessText(
				fmt.Sprintf("Imported key %q from %s (%d elements, id %s)", name, path, len(key), rec.ID),
				map[string]any{"name": name, "file": path, "key_length": len(key), "id": rec.ID},
			)
		},
	}
}

func keysListText(summaries []keySummary) string {
	if len(summaries) == 0 {
		return "No keys stored."
	}
	var b strings.Builder
	for i, s := range summaries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-20s %3d elements  board %d  created %s", s.Name, s.KeyLength, s.BoardSize, s.CreatedAt)
	}
	return b.String()
}
