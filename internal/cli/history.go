package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ledd/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent journaled commands",
		Long: `Show the most recent commands and replies from a ledd journal
database, newest first. Asynchronous completion notices appear with an
empty command column.

Example:
  ledd history --db ledd.db --limit 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to journal database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum entries to show")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	j, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	entries, err := j.Recent(opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "journal is empty")
		return nil
	}
	for _, e := range entries {
		line := e.Line
		if line == "" {
			line = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%8d  %-32s  %s\n", e.Tick, line, e.Reply)
	}
	return nil
}
