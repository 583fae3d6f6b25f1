package cli

import (
	"encoding/json"
	"fmt"

	"github.com/Abestanis/APython-PyToApk/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var (
		versionShort bool
		versionJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionShort {
				fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
				return nil
			}

			if versionJSON {
				info := map[string]string{
					"version": buildVersion,
					"commit":  buildCommit,
					"date":    buildDate,
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, built: %s)\n",
				branding.CLIName(), buildVersion, buildCommit, buildDate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	return cmd
}
