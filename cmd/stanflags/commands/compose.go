// File: lixenwraith/stanflags/cmd/stanflags/commands/compose.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newComposeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compose",
		Short: "Print make arguments, one per line",
		Example: `  # Compose from an options file
  stanflags compose -c stanflags.toml

  # Add options on the command line
  stanflags compose --stanc O=1 --stanc name=bernoulli --cpp STAN_THREADS=TRUE`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			validated, err := opts.build()
			if err != nil {
				return err
			}

			flags := validated.Compose()
			opts.logger.Debug().Int("count", len(flags)).Msg("Composed make arguments")
			for _, flag := range flags {
				fmt.Fprintln(cmd.OutOrStdout(), flag)
			}
			return nil
		},
	}
}
