// Package cli defines the Cobra command tree for the pytoapk CLI. Each file
// in this package builds one top-level command (fill, validate, prepare,
// etc.). Command implementations delegate to internal packages for the
// actual work and only handle flag parsing and output formatting.
//
// Run never exits the process; it returns an Outcome the caller turns into
// an exit code.
package cli
