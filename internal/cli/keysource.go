package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tourcrypt/tourcrypt/internal/keystore"
)

// KeySourceOptions selects where a command gets its key material:
// either a named key in a store, or a raw binary key file.
type KeySourceOptions struct {
	Database string
	Name     string
	KeyFile  string
}

// addKeySourceFlags registers the shared key-source flags.
func addKeySourceFlags(cmd *cobra.Command, opts *KeySourceOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to a key store")
	cmd.Flags().StringVar(&opts.Name, "name", "", "name of the stored key (requires --db)")
	cmd.Flags().StringVar(&opts.KeyFile, "key-file", "", "path to a raw binary key file")
}

// resolveKey loads key material from the configured source. Exactly one
// source must be configured; an empty loaded key is rejected here so
// the keystream never sees it.
func resolveKey(cmd *cobra.Command, opts *KeySourceOptions) ([]int, error) {
	fromStore := opts.Database != "" || opts.Name != ""
	fromFile := opts.KeyFile != ""

	switch {
	case fromStore && fromFile:
		return nil, NewExitError(ExitCommandError, "use either --db/--name or --key-file, not both")
	case fromFile:
		key, err := keystore.ImportFile(opts.KeyFile)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read key file", err)
		}
		if len(key) == 0 {
			return nil, NewExitError(ExitFailure, fmt.Sprintf("key file %q holds no key material", opts.KeyFile))
		}
		return key, nil
	case fromStore:
		if opts.Database == "" || opts.Name == "" {
			return nil, NewExitError(ExitCommandError, "--db and --name must be used together")
		}
		store, err := keystore.Open(opts.Database)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open key store", err)
		}
		defer store.Close()

		rec, err := store.LoadKey(cmd.Context(), opts.Name)
		if errors.Is(err, keystore.ErrKeyNotFound) {
			return nil, WrapExitError(ExitFailure, "no such key", err)
		}
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load key", err)
		}
		return rec.Key, nil
	default:
		return nil, NewExitError(ExitCommandError, "a key source is required: --db/--name or --key-file")
	}
}
