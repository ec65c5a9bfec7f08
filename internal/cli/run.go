package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridwork/jobflow/internal/harness"
)

// runResult is the JSON payload of the run command.
type runResult struct {
	Scenario   string `json:"scenario"`
	Clusters   int    `json:"clusters"`
	MaxTracked int    `json:"max_tracked"`
	Cycles     int    `json:"cycles"`
}

// NewRunCommand creates the run command: execute a YAML flow scenario
// against the in-memory scheduler and check its expectations.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scripted flow scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  opts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: opts.Verbose,
			}

			s, err := harness.Load(args[0])
			if err != nil {
				formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
				return WrapExitError(ExitCommandError, "load scenario", err)
			}

			ctx := cmd.Context()
			result, err := harness.Run(ctx, s)
			if err != nil {
				formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitFailure, "run scenario", err)
			}
			if err := result.Verify(ctx, s); err != nil {
				formatter.Error(ErrCodeInvalid, err.Error(), nil)
				return WrapExitError(ExitFailure, "scenario expectations not met", err)
			}

			if opts.Format == "json" {
				return formatter.Success(runResult{
					Scenario:   s.Name,
					Clusters:   len(result.Clusters),
					MaxTracked: result.MaxTracked,
					Cycles:     result.Cycles,
				})
			}
			return formatter.Success(fmt.Sprintf("%s: %d clusters, peak %d producers, %d cycles",
				s.Name, len(result.Clusters), result.MaxTracked, result.Cycles))
		},
	}
}
