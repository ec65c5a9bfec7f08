package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridwork/jobflow/internal/submit"
)

// validateResult is the JSON payload of the validate command.
type validateResult struct {
	Description string `json:"description"`
	Attributes  int    `json:"attributes"`
	Items       int    `json:"items"`
}

// NewValidateCommand creates the validate command: load a submit
// description and optional item data, and check they could be
// submitted.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	var (
		descPath string
		itemPath string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a submit description and its item data",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  opts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: opts.Verbose,
			}

			desc, err := LoadDescription(descPath)
			if err != nil {
				formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
				return WrapExitError(ExitCommandError, "load description", err)
			}
			if _, ok := desc["executable"]; !ok {
				msg := fmt.Sprintf("description %s has no executable attribute", descPath)
				formatter.Error(ErrCodeInvalid, msg, nil)
				return WrapExitError(ExitFailure, msg, nil)
			}

			var items []submit.Item
			if itemPath != "" {
				items, err = LoadItemdata(itemPath)
				if err != nil {
					formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
					return WrapExitError(ExitCommandError, "load item data", err)
				}
				if err := submit.CheckItemdata(items); err != nil {
					formatter.Error(ErrCodeInvalid, err.Error(), nil)
					return WrapExitError(ExitFailure, "invalid item data", err)
				}
			}

			if opts.Format == "json" {
				return formatter.Success(validateResult{
					Description: descPath,
					Attributes:  len(desc),
					Items:       len(items),
				})
			}
			return formatter.Success(fmt.Sprintf("ok: %d attributes, %d items", len(desc), len(items)))
		},
	}

	cmd.Flags().StringVar(&descPath, "description", "", "path to the CUE submit description (required)")
	cmd.Flags().StringVar(&itemPath, "itemdata", "", "path to YAML item data")
	cmd.MarkFlagRequired("description")

	return cmd
}
