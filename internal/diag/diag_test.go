package diag

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogKeepsOrderAndSeverity(t *testing.T) {
	var l Log
	l.Warn(UnknownArgument, "foo", "unknown formatting argument")
	l.Fail(InvalidArgumentValue, "appId", "invalid value %q", "3bad.pkg")
	l.Warn(NoIcon, "", "no icon specified")

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, UnknownArgument, entries[0].Kind)
	assert.Equal(t, InvalidArgumentValue, entries[1].Kind)
	assert.Equal(t, NoIcon, entries[2].Kind)

	assert.True(t, l.HasErrors())
	assert.Len(t, l.Errors(), 1)
	assert.Len(t, l.Warnings(), 2)
	assert.Equal(t, `invalid value "3bad.pkg"`, l.Errors()[0].Message)
}

func TestZeroLogHasNoErrors(t *testing.T) {
	var l Log
	assert.False(t, l.HasErrors())
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Entries())
}

func TestOfKind(t *testing.T) {
	var l Log
	l.Warn(MalformedDirective, "a.java:3", "bad span")
	l.Warn(UnknownDirectiveKey, "a.java:4", "unknown key")
	l.Warn(MalformedDirective, "b.java:1", "missing colon")

	got := l.OfKind(MalformedDirective)
	require.Len(t, got, 2)
	assert.Equal(t, "a.java:3", got[0].Subject)
	assert.Equal(t, "b.java:1", got[1].Subject)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Kind: IOFailure, Severity: Error, Subject: "app/x.java", Message: "permission denied"}
	assert.Equal(t, "error [IO_FAILURE] app/x.java: permission denied", d.String())

	d = Diagnostic{Kind: NoIcon, Severity: Warning, Message: "default icon used"}
	assert.Equal(t, "warning [NO_ICON] default icon used", d.String())
}

func TestNewLogMirrorsToLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(zerolog.New(&buf))

	l.Fail(MissingResourceFile, "icon.png", "does not exist")

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"kind":"MISSING_RESOURCE_FILE"`)
	assert.Contains(t, buf.String(), "does not exist")
}

func TestAppendDoesNotRelog(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(zerolog.New(&buf))

	var other Log
	other.Warn(UnknownArgument, "x", "unknown")
	l.Append(&other)
	l.Append(nil)

	assert.Equal(t, 1, l.Len())
	assert.Empty(t, buf.String())
}
