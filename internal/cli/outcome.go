package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// OutcomeKind classifies how a command invocation ended.
type OutcomeKind int

const (
	Completed OutcomeKind = iota
	HelpRequested
	InvalidArguments
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Completed:
		return "completed"
	case HelpRequested:
		return "help requested"
	case InvalidArguments:
		return "invalid arguments"
	default:
		return "failed"
	}
}

// Exit codes reported for each outcome.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Outcome is the result of running the command tree.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// ExitCode maps the outcome to a process exit status.
func (o Outcome) ExitCode() int {
	switch o.Kind {
	case Completed, HelpRequested:
		return exitOK
	case InvalidArguments:
		return exitUsage
	default:
		return exitError
	}
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// usageArgs wraps a positional argument validator so its failures count as
// invalid arguments.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func classify(cmd *cobra.Command, err error) Outcome {
	if err == nil {
		if helpShown(cmd) {
			return Outcome{Kind: HelpRequested}
		}
		return Outcome{Kind: Completed}
	}
	var uerr usageError
	if errors.As(err, &uerr) || strings.HasPrefix(err.Error(), "unknown command") {
		return Outcome{Kind: InvalidArguments, Err: err}
	}
	return Outcome{Kind: Failed, Err: err}
}

// helpShown reports whether cobra printed help instead of running cmd.
func helpShown(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if cmd.Name() == "help" || !cmd.Runnable() {
		return true
	}
	f := cmd.Flags().Lookup("help")
	return f != nil && f.Changed
}
