package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tourcrypt/tourcrypt/internal/board"
	"github.com/tourcrypt/tourcrypt/internal/keystore"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
}

// reportResult is the report command's JSON payload.
type reportResult struct {
	Name      string           `json:"name"`
	ID        string           `json:"id"`
	KeyLength int              `json:"key_length"`
	Key       []int            `json:"key"`
	DigestHex string           `json:"digest_hex,omitempty"`
	BoardSize int              `json:"board_size"`
	Start     board.Coordinate `json:"start"`
	CreatedAt string           `json:"created_at"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report <name>",
		Short: "Show the full report for a stored key",
		Long: `Show everything recorded about a stored key: the key sequence, the
passphrase digest it was derived from, and the board and start cell.

Example:
  tourcrypt report --db ./keys.db alpha`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the key store (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReport(opts *ReportOptions, name string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

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

	result := reportResult{
		Name:      rec.Name,
		ID:        rec.ID,
		KeyLength: len(rec.Key),
		Key:       rec.Key,
		DigestHex: rec.DigestHex,
		BoardSize: rec.BoardSize,
		Start:     rec.Start,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}
	return f.SuccessText(reportText(result), result)
}

func reportText(r reportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Encryption Key Report ===\n")
	fmt.Fprintf(&b, "Name:              %s (id %s)\n", r.Name, r.ID)
	fmt.Fprintf(&b, "Key Length:        %d\n", r.KeyLength)
	fmt.Fprintf(&b, "Key Sequence:      %s\n", formatKey(r.Key))
	if r.DigestHex != "" {
		fmt.Fprintf(&b, "Hashed Passphrase: %s\n", r.DigestHex)
	}
	fmt.Fprintf(&b, "Board:             %dx%d\n", r.BoardSize, r.BoardSize)
	fmt.Fprintf(&b, "Starting Position: %s\n", r.Start)
	fmt.Fprintf(&b, "Created:           %s", r.CreatedAt)
	return b.String()
}
