// Package directive recognizes and resolves the substitution directives
// embedded in skeleton source lines.
//
// A directive looks like
//
//	android:versionCode="1" <!-- REPLACE(22,23): appNumVersion the version code -->
//
// The two offsets are 1-based character positions forming the half-open
// span [start, end) that is replaced by the argument's value. Everything
// after the key is a free-form comment.
package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind enumerates the directive kinds the parser understands. New kinds are
// added here together with a case in Resolve.
type Kind int

const (
	// Replace splices an argument value into a span of the line.
	Replace Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// markers maps every kind to the literal text that introduces it.
var markers = []struct {
	kind   Kind
	marker string
}{
	{Replace, "REPLACE("},
}

// Directive is one parsed instruction.
type Directive struct {
	Kind  Kind
	Start int // 1-based, inclusive
	End   int // 1-based, exclusive
	Key   string
}

// ErrMalformed is wrapped by every parse error.
var ErrMalformed = errors.New("malformed directive")

// Find locates the first directive on line. found is false when the line
// carries no marker; err is non-nil when a marker is present but the
// directive after it cannot be parsed. Only the first marker is examined.
func Find(line string) (d Directive, found bool, err error) {
	kind, rest, ok := locate(line)
	if !ok {
		return Directive{}, false, nil
	}
	d, err = parse(kind, rest)
	if err != nil {
		return Directive{}, true, err
	}
	if err := d.checkSpan(line); err != nil {
		return Directive{}, true, err
	}
	return d, true, nil
}

func locate(line string) (Kind, string, bool) {
	best, bestKind, bestLen := -1, Kind(0), 0
	for _, m := range markers {
		if i := strings.Index(line, m.marker); i >= 0 && (best < 0 || i < best) {
			best, bestKind, bestLen = i, m.kind, len(m.marker)
		}
	}
	if best < 0 {
		return 0, "", false
	}
	return bestKind, line[best+bestLen:], true
}

func parse(kind Kind, rest string) (Directive, error) {
	closing := strings.IndexByte(rest, ')')
	if closing < 0 {
		return Directive{}, fmt.Errorf("%w: missing closing parenthesis", ErrMalformed)
	}

	params := strings.Split(rest[:closing], ",")
	if len(params) != 2 {
		return Directive{}, fmt.Errorf("%w: expected two offsets, got %d", ErrMalformed, len(params))
	}
	start, err := strconv.Atoi(strings.TrimSpace(params[0]))
	if err != nil {
		return Directive{}, fmt.Errorf("%w: start offset %q is not an integer", ErrMalformed, strings.TrimSpace(params[0]))
	}
	end, err := strconv.Atoi(strings.TrimSpace(params[1]))
	if err != nil {
		return Directive{}, fmt.Errorf("%w: end offset %q is not an integer", ErrMalformed, strings.TrimSpace(params[1]))
	}

	afterParams := rest[closing+1:]
	colon := strings.IndexByte(afterParams, ':')
	if colon < 0 {
		return Directive{}, fmt.Errorf("%w: missing ':' before the key", ErrMalformed)
	}
	key := strings.TrimLeftFunc(afterParams[colon+1:], unicode.IsSpace)
	if i := strings.IndexFunc(key, unicode.IsSpace); i >= 0 {
		key = key[:i]
	}
	if key == "" {
		return Directive{}, fmt.Errorf("%w: missing key", ErrMalformed)
	}

	return Directive{Kind: kind, Start: start, End: end, Key: key}, nil
}

func (d Directive) checkSpan(line string) error {
	n := utf8.RuneCountInString(line)
	if d.Start < 1 || d.End < d.Start || d.End-1 > n {
		return fmt.Errorf("%w: span (%d,%d) is outside a line of %d characters", ErrMalformed, d.Start, d.End, n)
	}
	return nil
}

// Splice replaces the characters of line in [start-1, end-1) with value.
// Offsets count characters, not bytes. The caller guarantees the span lies
// within the line.
func Splice(line string, start, end int, value string) string {
	runes := []rune(line)
	var b strings.Builder
	b.Grow(len(line) + len(value))
	b.WriteString(string(runes[:start-1]))
	b.WriteString(value)
	b.WriteString(string(runes[end-1:]))
	return b.String()
}
