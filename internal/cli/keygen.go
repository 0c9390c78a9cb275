package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tourcrypt/tourcrypt/internal/board"
	"github.com/tourcrypt/tourcrypt/internal/keystore"
	"github.com/tourcrypt/tourcrypt/internal/seed"
	"github.com/tourcrypt/tourcrypt/internal/tour"
)

// KeygenOptions holds flags for the keygen command.
type KeygenOptions struct {
	*RootOptions
	Size      int
	Normalize bool
	MaxNodes  int
	Database  string
	Name      string
}

// keygenResult is the keygen command's JSON payload.
type keygenResult struct {
	DigestHex     string           `json:"digest_hex"`
	Start         board.Coordinate `json:"start"`
	KeyLength     int              `json:"key_length"`
	Key           []int            `json:"key"`
	NodesExpanded int              `json:"nodes_expanded"`
	Backtracks    int              `json:"backtracks"`
	Duration      string           `json:"duration"`
	SavedAs       string           `json:"saved_as,omitempty"`
	KeyID         string           `json:"key_id,omitempty"`
}

// NewKeygenCommand creates the keygen command.
func NewKeygenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeygenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keygen <passphrase>",
		Short: "Derive a key from a passphrase via a Knight's Tour",
		Long: `Derive a key from a passphrase.

The passphrase is hashed with SHA-256; the first two digest bytes pick
the knight's starting cell on an N×N board, and the tour the search
finds from there becomes the key: the ordered sequence of cell values
the knight visits.

Example:
  tourcrypt keygen -n 8 "samplepassphrase"
  tourcrypt keygen -n 8 --db ./keys.db --name alpha "samplepassphrase"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeygen(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Size, "size", "n", 8, "board size N for an N×N board")
	cmd.Flags().BoolVar(&opts.Normalize, "normalize", false, "NFC-normalize the passphrase before hashing")
	cmd.Flags().IntVar(&opts.MaxNodes, "max-nodes", 0, "node-expansion budget for the search (0 = unbounded)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to a key store; saves the key when set")
	cmd.Flags().StringVar(&opts.Name, "name", "", "name to save the key under (requires --db)")

	return cmd
}

func runKeygen(opts *KeygenOptions, passphrase string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if (opts.Database == "") != (opts.Name == "") {
		return NewExitError(ExitCommandError, "--db and --name must be used together")
	}

	if opts.Normalize {
		passphrase = seed.Normalize(passphrase)
	}

	sd, err := seed.New([]byte(passphrase), opts.Size)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid board size", err)
	}
	slog.Debug("seeded board", "size", opts.Size, "start", sd.Start, "digest", sd.DigestHex())

	var searchOpts []tour.Option
	if opts.MaxNodes > 0 {
		searchOpts = append(searchOpts, tour.WithMaxNodes(opts.MaxNodes))
	}

	key, stats, err := tour.Search(sd.Board, sd.Start, searchOpts...)
	if err != nil {
		_ = f.Error(CodeSearchFailure, err.Error(), nil)
		return WrapExitError(ExitFailure, "key generation failed", err)
	}
	slog.Debug("tour complete", "nodes", stats.NodesExpanded, "backtracks", stats.Backtracks, "duration", stats.Duration)

	result := keygenResult{
		DigestHex:     sd.DigestHex(),
		Start:         sd.Start,
		KeyLength:     len(key),
		Key:           key,
		NodesExpanded: stats.NodesExpanded,
		Backtracks:    stats.Backtracks,
		Duration:      stats.Duration.String(),
	}

	if opts.Database != "" {
		rec, err := saveKey(cmd, opts.Database, opts.Name, sd, key)
		if err != nil {
			return err
		}
		result.SavedAs = rec.Name
		result.KeyID = rec.ID
	}

	return f.SuccessText(keygenText(result), result)
}

func saveKey(cmd *cobra.Command, dbPath, name string, sd *seed.Seed, key tour.Key) (keystore.Record, error) {
	store, err := keystore.Open(dbPath)
	if err != nil {
		return keystore.Record{}, WrapExitError(ExitCommandError, "failed to open key store", err)
	}
	defer store.Close()

	rec, err := store.SaveKey(cmd.Context(), keystore.Record{
		Name:      name,
		BoardSize: sd.Board.Size(),
		Start:     sd.Start,
		DigestHex: sd.DigestHex(),
		Key:       key,
	})
	if err != nil {
		return keystore.Record{}, WrapExitError(ExitCommandError, "failed to save key", err)
	}
	return rec, nil
}

func keygenText(r keygenResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Digest:      %s\n", r.DigestHex)
	fmt.Fprintf(&b, "Start:       %s\n", r.Start)
	fmt.Fprintf(&b, "Key length:  %d\n", r.KeyLength)
	fmt.Fprintf(&b, "Key:         %s\n", formatKey(r.Key))
	fmt.Fprintf(&b, "Search:      %d nodes, %d backtracks, %s", r.NodesExpanded, r.Backtracks, r.Duration)
	if r.SavedAs != "" {
		fmt.Fprintf(&b, "\nSaved as %q (id %s)", r.SavedAs, r.KeyID)
	}
	return b.String()
}

// formatKey renders key elements space-separated, the way the key
// sequence has always been displayed.
func formatKey(key []int) string {
	parts := make([]string, len(key))
	for i, v := range key {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}
