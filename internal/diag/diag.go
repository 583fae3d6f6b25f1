// Package diag collects the ordered warnings and errors produced while a
// skeleton is validated and filled. Every recorded diagnostic is also sent
// to the component logger so the CLI sees it as it happens.
package diag

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Kind identifies a class of diagnostic. Values are stable and safe to match in tests.
type Kind string

const (
	UnknownArgument          Kind = "UNKNOWN_ARGUMENT"
	MissingArgumentNoDefault Kind = "MISSING_ARGUMENT_NO_DEFAULT"
	InvalidArgumentValue     Kind = "INVALID_ARGUMENT_VALUE"
	MissingResourceFile      Kind = "MISSING_RESOURCE_FILE"
	NoIcon                   Kind = "NO_ICON"
	MalformedDirective       Kind = "MALFORMED_DIRECTIVE"
	UnknownDirectiveKey      Kind = "UNKNOWN_DIRECTIVE_KEY"
	AmbiguousPackageDir      Kind = "AMBIGUOUS_PACKAGE_DIR"
	PackageRenameSkipped     Kind = "PACKAGE_RENAME_SKIPPED"
	IOFailure                Kind = "IO_FAILURE"
)

// Severity tells whether a diagnostic aborts the run.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single recorded finding.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Subject  string // argument name, file path or directive line
	Message  string
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s [%s] %s", d.Severity, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Kind, d.Subject, d.Message)
}

// Log is an ordered diagnostic list. The zero value is ready to use and
// discards log output.
type Log struct {
	entries []Diagnostic
	logger  *zerolog.Logger
}

// NewLog returns a Log that mirrors every entry to logger.
func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: &logger}
}

// Warn records a non-fatal diagnostic.
func (l *Log) Warn(kind Kind, subject, format string, args ...any) {
	l.add(Diagnostic{Kind: kind, Severity: Warning, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Fail records a fatal diagnostic.
func (l *Log) Fail(kind Kind, subject, format string, args ...any) {
	l.add(Diagnostic{Kind: kind, Severity: Error, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

func (l *Log) add(d Diagnostic) {
	l.entries = append(l.entries, d)
	if l.logger == nil {
		return
	}
	ev := l.logger.Warn()
	if d.Severity == Error {
		ev = l.logger.Error()
	}
	ev.Str("kind", string(d.Kind)).Str("subject", d.Subject).Msg(d.Message)
}

// Entries returns a copy of all diagnostics in recording order.
func (l *Log) Entries() []Diagnostic {
	out := make([]Diagnostic, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded diagnostics.
func (l *Log) Len() int { return len(l.entries) }

// HasErrors reports whether any fatal diagnostic was recorded.
func (l *Log) HasErrors() bool {
	for _, d := range l.entries {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns the fatal diagnostics in recording order.
func (l *Log) Errors() []Diagnostic { return l.filter(func(d Diagnostic) bool { return d.Severity == Error }) }

// Warnings returns the non-fatal diagnostics in recording order.
func (l *Log) Warnings() []Diagnostic {
	return l.filter(func(d Diagnostic) bool { return d.Severity == Warning })
}

// OfKind returns the diagnostics of the given kind in recording order.
func (l *Log) OfKind(kind Kind) []Diagnostic {
	return l.filter(func(d Diagnostic) bool { return d.Kind == kind })
}

// Append copies the entries of other into l without logging them again.
func (l *Log) Append(other *Log) {
	if other == nil {
		return
	}
	l.entries = append(l.entries, other.entries...)
}

func (l *Log) filter(keep func(Diagnostic) bool) []Diagnostic {
	var out []Diagnostic
	for _, d := range l.entries {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
