package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
	"github.com/alberto-ros/ConsistencyChecker/internal/report"
	"github.com/alberto-ros/ConsistencyChecker/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <program-file>",
		Short: "Enumerate all outcomes of a litmus program under both models",
		Long: `Enumerate every final outcome of a litmus program under IBM370 and TSO.

The program file uses the line format ("st x 1", "ld x", "---" ends a thread)
or, with a .yaml/.yml extension, the YAML litmus document format. "-" reads
the line format from stdin.

Example:
  consistency-checker run sb.litmus
  consistency-checker run sb.yaml --format json
  consistency-checker run sb.litmus --db history.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "persist the run to this SQLite database")

	return cmd
}

func runProgram(opts *RunOptions, path string, cmd *cobra.Command) error {
	prog, err := loadProgram(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load program", err)
	}
	slog.Debug("program loaded",
		"threads", prog.NumThreads(),
		"instructions", prog.NumInstructions(),
		"variables", len(prog.Vars()),
	)

	res := report.Run(prog)

	if opts.Database != "" {
		if err := persistRun(opts.Database, res, cmd); err != nil {
			return err
		}
	}

	if opts.Format == "json" {
		if err := res.RenderJSON(cmd.OutOrStdout()); err != nil {
			return WrapExitError(ExitCommandError, "failed to render report", err)
		}
		return nil
	}
	if err := res.RenderText(cmd.OutOrStdout()); err != nil {
		return WrapExitError(ExitCommandError, "failed to render report", err)
	}
	return nil
}

func persistRun(dbPath string, res *report.Result, cmd *cobra.Command) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	run := store.NewRun(res)
	if err := st.WriteRun(cmd.Context(), run); err != nil {
		return WrapExitError(ExitCommandError, "failed to persist run", err)
	}
	slog.Info("run persisted", "id", run.ID, "db", dbPath)
	return nil
}

// loadProgram reads a litmus program from path. "-" means stdin (line
// format); a .yaml/.yml extension selects the YAML document format.
func loadProgram(path string) (*litmus.Program, error) {
	if path == "-" {
		return litmus.Parse(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return litmus.ParseYAML(f)
	default:
		return litmus.Parse(f)
	}
}
