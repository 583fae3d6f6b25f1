package directive

import (
	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
)

// Resolve applies the first directive on line using values and returns the
// resulting line. Lines without a directive, with a malformed directive, with
// an unknown key or with a deferred value come back unchanged. subject names
// the line in diagnostics, typically "path:line".
func Resolve(line string, values formatargs.Values, subject string, log *diag.Log) string {
	d, found, err := Find(line)
	if !found {
		return line
	}
	if err != nil {
		log.Warn(diag.MalformedDirective, subject, "found invalid formatting command %q: %v", line, err)
		return line
	}

	switch d.Kind {
	case Replace:
		return resolveReplace(line, d, values, subject, log)
	default:
		log.Warn(diag.MalformedDirective, subject, "unsupported directive kind %s", d.Kind)
		return line
	}
}

func resolveReplace(line string, d Directive, values formatargs.Values, subject string, log *diag.Log) string {
	val, ok := values.Lookup(d.Key)
	if !ok {
		log.Warn(diag.UnknownDirectiveKey, subject, "found unknown formatting variable %q", d.Key)
		return line
	}
	if val.Deferred {
		return line
	}
	return Splice(line, d.Start, d.End, val.Text)
}
