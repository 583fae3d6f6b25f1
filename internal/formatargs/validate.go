package formatargs

import (
	"slices"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/spf13/afero"
)

// Value is the resolved state of one argument.
type Value struct {
	Text string
	// Deferred means directives referencing the argument are left untouched.
	Deferred bool
}

// Values maps schema argument names to their resolved values.
type Values map[string]Value

// Lookup returns the resolved value for key. The second result is false for
// names outside the schema.
func (v Values) Lookup(key string) (Value, bool) {
	val, ok := v[key]
	return val, ok
}

// Resources are the optional replacement files supplied with a configuration.
type Resources struct {
	Icon     string
	Manifest string
}

// Input is the raw material handed to Validate.
type Input struct {
	Args      map[string]string
	Resources Resources
}

// Result is the outcome of a validation run. It is not modified after Validate returns.
type Result struct {
	OK        bool
	Values    Values
	Unknown   map[string]string
	Resources Resources
}

// Validate resolves in against the schema. All arguments are checked before
// returning so log receives every problem, not only the first one. Resource
// paths are checked for existence on fs.
func (s Schema) Validate(fs afero.Fs, in Input, log *diag.Log) *Result {
	res := &Result{
		OK:        true,
		Values:    make(Values, len(s)),
		Unknown:   make(map[string]string),
		Resources: in.Resources,
	}

	names := make([]string, 0, len(in.Args))
	for name := range in.Args {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, known := s.Lookup(name); !known {
			log.Warn(diag.UnknownArgument, name, "found an unknown formatting argument")
			res.Unknown[name] = in.Args[name]
		}
	}

	for _, arg := range s {
		raw, present := in.Args[arg.Name]
		switch {
		case present:
			if arg.Valid != nil && !arg.Valid(raw) {
				log.Fail(diag.InvalidArgumentValue, arg.Name, "invalid value %q", raw)
				res.OK = false
				continue
			}
			res.Values[arg.Name] = Value{Text: raw}
		case arg.Default != nil:
			res.Values[arg.Name] = Value{Text: *arg.Default}
		case arg.Deferred:
			res.Values[arg.Name] = Value{Deferred: true}
		default:
			log.Warn(diag.MissingArgumentNoDefault, arg.Name,
				"missing formatting argument, the default value provided by the skeleton will be used")
			res.Values[arg.Name] = Value{Deferred: true}
		}
	}

	if !checkResources(fs, in.Resources, log) {
		res.OK = false
	}
	return res
}

func checkResources(fs afero.Fs, r Resources, log *diag.Log) bool {
	ok := true
	if r.Icon == "" {
		log.Warn(diag.NoIcon, "", "no icon was specified, the default icon provided by the skeleton will be used")
	} else if !isFile(fs, r.Icon) {
		log.Fail(diag.MissingResourceFile, r.Icon, "the specified icon path does not point to an existing file")
		ok = false
	}
	if r.Manifest != "" && !isFile(fs, r.Manifest) {
		log.Fail(diag.MissingResourceFile, r.Manifest, "the specified manifest template does not point to an existing file")
		ok = false
	}
	return ok
}

func isFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
