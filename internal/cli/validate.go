package cli

import (
	"fmt"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/filler"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the format arguments of a project",
		Long: `Resolve the format arguments against the schema and print every
diagnostic. Exits non-zero when an argument is invalid or a resource file
is missing.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input()
			if err != nil {
				return err
			}

			var log diag.Log
			res := formatargs.DefaultSchema().Validate(afero.NewOsFs(), in, &log)
			printDiagnostics(cmd.OutOrStdout(), &log)
			if !res.OK {
				return fmt.Errorf("%d problem(s) found: %w", len(log.Errors()), filler.ErrInvalidArguments)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Format arguments are valid (%d warnings).\n", len(log.Warnings()))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
