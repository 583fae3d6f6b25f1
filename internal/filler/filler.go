package filler

import (
	"errors"
	"fmt"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/Abestanis/APython-PyToApk/internal/logging"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
)

// ErrInvalidArguments is returned when validation rejects the configuration.
// Nothing on disk was touched in that case.
var ErrInvalidArguments = errors.New("invalid format arguments")

// Options configures one Fill run.
type Options struct {
	// Root is the skeleton copy that gets filled in place.
	Root string
	// Layout defaults to skeleton.DefaultLayout when zero.
	Layout skeleton.Layout
	// Schema defaults to formatargs.DefaultSchema when nil.
	Schema formatargs.Schema
	Input  formatargs.Input
	// Validated skips validation; Input and Schema are ignored when set.
	Validated *formatargs.Result
	// SDKPath is written to local.properties when not empty.
	SDKPath string
	// Log receives the diagnostics. A logging Log is created when nil.
	Log *diag.Log
}

// Report is the outcome of a Fill run.
type Report struct {
	OK          bool
	Values      formatargs.Values
	Diagnostics *diag.Log
}

// Fill validates the configuration and, if it is valid, swaps resources,
// resolves every directive, writes local.properties and renames the package
// directory, in that order. The first I/O failure stops the run without
// rolling back earlier steps.
func Fill(fs afero.Fs, opts Options) (*Report, error) {
	logger := logging.Get("filler")
	done := logging.Operation(logger, "fill")
	defer done()

	log := opts.Log
	if log == nil {
		log = diag.NewLog(logger)
	}
	layout := opts.Layout
	if layout.PackageRoot == "" && len(layout.Extensions) == 0 {
		layout = skeleton.DefaultLayout()
	}

	res := opts.Validated
	if res == nil {
		schema := opts.Schema
		if schema == nil {
			schema = formatargs.DefaultSchema()
		}
		res = schema.Validate(fs, opts.Input, log)
	}
	report := &Report{Values: res.Values, Diagnostics: log}
	if !res.OK {
		return report, ErrInvalidArguments
	}

	if info, err := fs.Stat(opts.Root); err != nil || !info.IsDir() {
		log.Fail(diag.IOFailure, opts.Root, "the skeleton directory does not exist")
		return report, fmt.Errorf("skeleton directory %s not found", opts.Root)
	}

	if err := SwapResources(fs, opts.Root, layout, res.Resources, log); err != nil {
		return report, err
	}
	if err := FillTree(fs, opts.Root, layout, res.Values, log); err != nil {
		return report, err
	}
	if opts.SDKPath != "" {
		path := skeleton.Path(opts.Root, layout.LocalProperties)
		if err := WriteLocalProperties(fs, path, opts.SDKPath); err != nil {
			log.Fail(diag.IOFailure, path, "%v", err)
			return report, err
		}
	}

	appID, ok := res.Values.Lookup(formatargs.AppID)
	if !ok || appID.Deferred || appID.Text == "" {
		log.Warn(diag.PackageRenameSkipped, formatargs.AppID, "no application id given, keeping the skeleton's package directory")
	} else if err := RenamePackage(fs, opts.Root, layout.PackageRoot, appID.Text, log); err != nil {
		return report, err
	}

	report.OK = true
	logger.Info().Str("root", opts.Root).Int("warnings", len(log.Warnings())).Msg("skeleton filled")
	return report, nil
}
