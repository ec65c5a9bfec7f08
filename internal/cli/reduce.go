package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridwork/jobflow/internal/constraint"
)

// reduceResult is the JSON payload of the reduce command.
type reduceResult struct {
	Input     string `json:"input"`
	Reduced   string `json:"reduced"`
	Canonical string `json:"canonical"`
}

// NewReduceCommand creates the reduce command: parse a filter
// expression, simplify it algebraically and print the result.
func NewReduceCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reduce <expression>",
		Short: "Parse and simplify a filter expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  opts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: opts.Verbose,
			}

			input := strings.Join(args, " ")
			c, err := constraint.Parse(input)
			if err != nil {
				formatter.Error(ErrCodeParse, err.Error(), nil)
				return WrapExitError(ExitFailure, "parse expression", err)
			}

			reduced := constraint.Reduce(c)
			if opts.Format == "json" {
				return formatter.Success(reduceResult{
					Input:     input,
					Reduced:   reduced.String(),
					Canonical: constraint.Canonical(reduced),
				})
			}
			return formatter.Success(reduced.String())
		},
	}
}
