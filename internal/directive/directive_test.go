package directive

import (
	"errors"
	"testing"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplice(t *testing.T) {
	assert.Equal(t, "XQ4END", Splice("X1234END", 2, 5, "Q"))
	assert.Equal(t, "abc", Splice("abc", 2, 2, ""))
	assert.Equal(t, "zzabc", Splice("abc", 1, 1, "zz"))
	assert.Equal(t, "abXY", Splice("abcd", 3, 5, "XY"))
	assert.Equal(t, "é!ü", Splice("é?ü", 2, 3, "!"), "offsets count characters")
}

func TestFind(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantFound bool
		wantErr   bool
		want      Directive
	}{
		{
			name: "no marker",
			line: `String tag = "PythonApp";`,
		},
		{
			name:      "well formed",
			line:      `String tag = "PythonApp"; // REPLACE(15,24): appLogTag the log tag`,
			wantFound: true,
			want:      Directive{Kind: Replace, Start: 15, End: 24, Key: "appLogTag"},
		},
		{
			name:      "spaces around offsets",
			line:      `v = 1; // REPLACE( 5 , 6 ):appNumVersion`,
			wantFound: true,
			want:      Directive{Kind: Replace, Start: 5, End: 6, Key: "appNumVersion"},
		},
		{
			name:      "key at end of line",
			line:      `x = 0 /* REPLACE(5,6): appMinSdk`,
			wantFound: true,
			want:      Directive{Kind: Replace, Start: 5, End: 6, Key: "appMinSdk"},
		},
		{
			name:      "key terminated by tab",
			line:      "x = 0 // REPLACE(5,6): appMinSdk\tcomment",
			wantFound: true,
			want:      Directive{Kind: Replace, Start: 5, End: 6, Key: "appMinSdk"},
		},
		{name: "missing closing parenthesis", line: `x // REPLACE(1,2: key`, wantFound: true, wantErr: true},
		{name: "non integer offset", line: `x // REPLACE(a,2): key`, wantFound: true, wantErr: true},
		{name: "single offset", line: `x // REPLACE(1): key`, wantFound: true, wantErr: true},
		{name: "three offsets", line: `x // REPLACE(1,2,3): key`, wantFound: true, wantErr: true},
		{name: "missing colon", line: `x // REPLACE(1,2) key`, wantFound: true, wantErr: true},
		{name: "missing key", line: `x // REPLACE(1,2):   `, wantFound: true, wantErr: true},
		{name: "span past end of line", line: `x // REPLACE(1,99): key`, wantFound: true, wantErr: true},
		{name: "reversed span", line: `xxxxxx // REPLACE(4,2): key`, wantFound: true, wantErr: true},
		{name: "zero start", line: `xxxxxx // REPLACE(0,2): key`, wantFound: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, found, err := Find(tt.line)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestFindOnlyFirstMarker(t *testing.T) {
	line := `ab // REPLACE(1,2): first REPLACE(2,3): second`
	d, found, err := Find(line)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", d.Key)
}

func values() formatargs.Values {
	return formatargs.Values{
		formatargs.AppLogTag:    {Text: "MyApp"},
		formatargs.AppTargetSdk: {Deferred: true},
		formatargs.Requirements: {Text: ""},
		"name":                  {Text: "Q"},
	}
}

func TestResolveReplacesSpan(t *testing.T) {
	var log diag.Log
	line := `String TAG = "PythonApp"; // REPLACE(15,24): appLogTag the log tag`

	got := Resolve(line, values(), "Main.java:3", &log)

	assert.Equal(t, `String TAG = "MyApp"; // REPLACE(15,24): appLogTag the log tag`, got)
	assert.Empty(t, log.Entries())
}

func TestResolveKeepsEverythingOutsideSpan(t *testing.T) {
	var log diag.Log
	line := `X1234END // REPLACE(2,5): name`

	got := Resolve(line, values(), "f:1", &log)

	assert.Equal(t, `XQ4END // REPLACE(2,5): name`, got)
}

func TestResolveEmptyValueRemovesSpan(t *testing.T) {
	var log diag.Log
	line := `reqs = "twisted" // REPLACE(9,16): requirements`

	got := Resolve(line, values(), "f:1", &log)

	assert.Equal(t, `reqs = "" // REPLACE(9,16): requirements`, got)
}

func TestResolveDeferredLeavesLine(t *testing.T) {
	var log diag.Log
	line := `targetSdkVersion 28 // REPLACE(18,20): appTargetSdk`

	got := Resolve(line, values(), "build.gradle:7", &log)

	assert.Equal(t, line, got)
	assert.Empty(t, log.Entries())
}

func TestResolveUnknownKey(t *testing.T) {
	var log diag.Log
	line := `x = 1 // REPLACE(5,6): colour`

	got := Resolve(line, values(), "f:9", &log)

	assert.Equal(t, line, got)
	unknown := log.OfKind(diag.UnknownDirectiveKey)
	require.Len(t, unknown, 1)
	assert.Equal(t, "f:9", unknown[0].Subject)
	assert.False(t, log.HasErrors())
}

func TestResolveMalformed(t *testing.T) {
	var log diag.Log
	line := `x = 1 // REPLACE(five,6): appLogTag`

	got := Resolve(line, values(), "f:2", &log)

	assert.Equal(t, line, got)
	require.Len(t, log.OfKind(diag.MalformedDirective), 1)
	assert.False(t, log.HasErrors())
}

func TestResolveSelfConsumingDirectiveIsIdempotent(t *testing.T) {
	var log diag.Log
	line := `TAG = /* REPLACE(7,48): appLogTag */"PythonApp";`

	once := Resolve(line, values(), "f:1", &log)
	twice := Resolve(once, values(), "f:1", &log)

	assert.Equal(t, `TAG = MyApp;`, once)
	assert.Equal(t, once, twice)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "replace", Replace.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
