package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alberto-ros/ConsistencyChecker/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List persisted runs, or show one run's outcomes",
		Long: `Read the run history written by "run --db". Without arguments, lists all
stored runs newest first. With a run ID, shows the run's program and its
outcomes per model, violations marked with "*".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showRun(opts, args[0], cmd)
			}
			return listRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// runListing is the JSON payload of a single stored run.
type runListing struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Program   string             `json:"program"`
	Outcomes  []store.OutcomeRow `json:"outcomes"`
}

func (r runListing) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (%s)\n", r.ID, r.CreatedAt.Format(time.RFC3339))
	b.WriteString(r.Program)
	model := ""
	for _, row := range r.Outcomes {
		if row.Model != model {
			model = row.Model
			fmt.Fprintf(&b, "%s:\n", model)
		}
		mark := ""
		if row.Violation {
			mark = "*"
		}
		fmt.Fprintf(&b, "  %s%s\n", row.Outcome, mark)
	}
	return strings.TrimRight(b.String(), "\n")
}

func openHistory(opts *HistoryOptions) (*store.Store, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func listRuns(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := openHistory(opts)
	if err != nil {
		return err
	}
	defer closeStore(st)

	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs stored")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d outcomes\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Outcomes)
	}
	return nil
}

func showRun(opts *HistoryOptions, id string, cmd *cobra.Command) error {
	st, err := openHistory(opts)
	if err != nil {
		return err
	}
	defer closeStore(st)

	run, err := st.ReadRun(cmd.Context(), id)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	listing := runListing{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Program:   run.Program,
		Outcomes:  run.Outcomes,
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(listing)
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
