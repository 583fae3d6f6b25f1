package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Abestanis/APython-PyToApk/internal/branding"
	"github.com/Abestanis/APython-PyToApk/internal/config"
	"github.com/Abestanis/APython-PyToApk/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// NewRootCmd builds the command tree. Log output goes to errOut.
func NewRootCmd(errOut io.Writer) *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` fills an Android app skeleton with the settings of a Python
program. It validates the project's format arguments, resolves the REPLACE
directives in the skeleton sources, swaps icon and manifest and renames the
Java package directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity, errOut)
			config.Load()
			logger := logging.Get("cli")
			logger.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newFillCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newPrepareCmd())
	rootCmd.AddCommand(newSkeletonCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Run executes the command tree with args and reports how it ended. Errors
// are printed to errOut.
func Run(ctx context.Context, args []string, out, errOut io.Writer) Outcome {
	rootCmd := NewRootCmd(errOut)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	outcome := classify(cmd, err)
	switch outcome.Kind {
	case InvalidArguments:
		fmt.Fprintf(errOut, "Error: %v\n", err)
		name := branding.CLIName()
		if cmd != nil {
			name = cmd.CommandPath()
		}
		fmt.Fprintf(errOut, "Run '%s --help' for usage.\n", name)
	case Failed:
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return outcome
}

// Execute runs the CLI with the process arguments and build info injected
// via ldflags.
func Execute(version, commit, date string) Outcome {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
