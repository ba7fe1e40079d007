// File: lixenwraith/stanflags/cmd/stanflags/commands/validate.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate compiler options",
		Long: `Validate compiler options from all sources.

This command checks:
  - stanc options against the known and ignorable sets
  - OpenCL device and platform ids
  - include path directories and the user header file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			validated, err := opts.build()
			if err != nil {
				return err
			}

			opts.logger.Info().Msg("Compiler options are valid")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			fmt.Fprintln(cmd.OutOrStdout(), validated.String())
			return nil
		},
	}
}
