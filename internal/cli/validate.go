package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// validateSummary is the success payload of the validate command.
type validateSummary struct {
	Threads      int      `json:"threads"`
	Instructions int      `json:"instructions"`
	Variables    []string `json:"variables"`
}

func (s validateSummary) String() string {
	return fmt.Sprintf("OK: %d threads, %d instructions, %d variables",
		s.Threads, s.Instructions, len(s.Variables))
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <program-file>",
		Short: "Check a litmus program against the loader and size bounds",
		Long: `Parse a litmus program and check it against the size bounds without
enumerating anything. Malformed input is reported with its source location.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateProgram(opts, args[0], cmd)
		},
	}

	return cmd
}

func validateProgram(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	prog, err := loadProgram(path)
	if err != nil {
		if ferr := formatter.Error(err.Error(), nil); ferr != nil {
			return WrapExitError(ExitCommandError, "failed to render error", ferr)
		}
		return WrapExitError(ExitFailure, "invalid program", err)
	}

	summary := validateSummary{
		Threads:      prog.NumThreads(),
		Instructions: prog.NumInstructions(),
		Variables:    prog.Vars(),
	}
	if err := formatter.Success(summary); err != nil {
		return WrapExitError(ExitCommandError, "failed to render summary", err)
	}
	return nil
}
