package formatargs

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// MaxVersionCode is the largest versionCode the Play Store accepts.
const MaxVersionCode = 2100000000

// Argument names understood by the default schema.
const (
	AppLogTag     = "appLogTag"
	WindowType    = "windowType"
	MinPyVersion  = "minPyVersion"
	Requirements  = "requirements"
	AppID         = "appId"
	AppName       = "appName"
	AppTargetSdk  = "appTargetSdk"
	AppMinSdk     = "appMinSdk"
	AppNumVersion = "appNumVersion"
	AppVersion    = "appVersion"
)

// WindowTypes are the window backends a skeleton knows how to start.
var WindowTypes = []string{"NO_WINDOW", "TERMINAL", "SDL", "WINDOW_MANAGER", "ANDROID"}

var (
	pyVersionPattern   = regexp.MustCompile(`^\d+(\.\d+){0,2}$`)
	javaPackagePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)
	digitsPattern      = regexp.MustCompile(`^[0-9]+$`)
)

// Predicate reports whether a supplied value is acceptable.
type Predicate func(value string) bool

// Argument describes one recognized format argument.
type Argument struct {
	Name  string
	Valid Predicate
	// Default is installed when the argument is absent. Nil means no default.
	Default *string
	// Deferred makes an absent argument keep the skeleton's own literal
	// text, without a diagnostic.
	Deferred bool
	Help     string
}

// Required reports whether leaving the argument out produces a diagnostic.
func (a Argument) Required() bool {
	return a.Default == nil && !a.Deferred
}

// Schema is an ordered table of arguments. Order determines diagnostic order.
type Schema []Argument

// DefaultSchema returns the arguments every skeleton understands.
func DefaultSchema() Schema {
	return Schema{
		{Name: AppLogTag, Valid: NonEmpty, Help: "tag used for the app's log output"},
		{Name: WindowType, Valid: OneOf(WindowTypes...), Help: "window backend: " + strings.Join(WindowTypes, ", ")},
		{Name: MinPyVersion, Valid: Optional(Matches(pyVersionPattern)), Default: strPtr(""), Help: "minimum Python version, e.g. 3.5"},
		{Name: Requirements, Valid: Any, Default: strPtr(""), Help: "requirements installed with the app"},
		{Name: AppID, Valid: Matches(javaPackagePattern), Help: "Java package identifier, e.g. com.example.app"},
		{Name: AppName, Valid: Any, Help: "human readable app name"},
		{Name: AppTargetSdk, Valid: PositiveInt, Deferred: true, Help: "target SDK level"},
		{Name: AppMinSdk, Valid: PositiveInt, Help: "minimum SDK level"},
		{Name: AppNumVersion, Valid: IntRange(1, MaxVersionCode), Help: "numeric version code"},
		{Name: AppVersion, Valid: Any, Help: "version name shown to users"},
	}
}

// Lookup returns the argument with the given name.
func (s Schema) Lookup(name string) (Argument, bool) {
	i := slices.IndexFunc(s, func(a Argument) bool { return a.Name == name })
	if i < 0 {
		return Argument{}, false
	}
	return s[i], true
}

// With returns a copy of s extended by args. An argument whose name already
// exists replaces the earlier definition in place.
func (s Schema) With(args ...Argument) Schema {
	out := slices.Clone(s)
	for _, a := range args {
		if i := slices.IndexFunc(out, func(b Argument) bool { return b.Name == a.Name }); i >= 0 {
			out[i] = a
			continue
		}
		out = append(out, a)
	}
	return out
}

// Names returns the argument names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, a := range s {
		names[i] = a.Name
	}
	return names
}

// Any accepts every value.
func Any(string) bool { return true }

// NonEmpty accepts any value that is not the empty string.
func NonEmpty(v string) bool { return v != "" }

// PositiveInt accepts decimal integers greater than zero.
func PositiveInt(v string) bool {
	return IntRange(1, -1)(v)
}

// IntRange accepts decimal integers in [lo, hi]. A negative hi means no upper bound.
func IntRange(lo, hi int64) Predicate {
	return func(v string) bool {
		if !digitsPattern.MatchString(v) {
			return false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false
		}
		return n >= lo && (hi < 0 || n <= hi)
	}
}

// OneOf accepts exactly one of the listed values.
func OneOf(values ...string) Predicate {
	return func(v string) bool { return slices.Contains(values, v) }
}

// Matches accepts values matching re.
func Matches(re *regexp.Regexp) Predicate {
	return re.MatchString
}

// Optional accepts the empty string in addition to whatever p accepts.
func Optional(p Predicate) Predicate {
	return func(v string) bool { return v == "" || p(v) }
}

func strPtr(s string) *string { return &s }
