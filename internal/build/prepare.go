package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/filler"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/Abestanis/APython-PyToApk/internal/logging"
	"github.com/Abestanis/APython-PyToApk/internal/project"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
)

// SkeletonSource provides a skeleton checkout. *skeleton.Fetcher implements it.
type SkeletonSource interface {
	Ensure(ctx context.Context, url, dir, branch string, allowUpdate bool) error
}

// Request describes one prepare run. Empty TemplateGit and SourceDir fall
// back to the project file, TemplateGit then to DefaultTemplateGit.
type Request struct {
	ProjectFile        string
	TemplateGit        string
	DefaultTemplateGit string
	SourceDir          string
	// SkeletonDir is the persistent checkout, BuildDir the directory that is
	// wiped and refilled on every run.
	SkeletonDir string
	BuildDir    string
	SDKPath     string
	AllowUpdate bool
	// Source defaults to a git Fetcher with a fresh SyncCache.
	Source SkeletonSource
	// FS defaults to the OS filesystem.
	FS afero.Fs
}

// Report is the result of Prepare.
type Report struct {
	OK          bool
	Project     *project.Project
	Skeleton    *skeleton.Description
	Diagnostics *diag.Log
}

// Prepare produces a filled build directory ready for the Android build:
// it loads and validates the project, makes sure the skeleton checkout is
// present, copies it into the build directory, fills it and installs the
// Python sources. Nothing is written before validation succeeds.
func Prepare(ctx context.Context, req Request) (*Report, error) {
	logger := logging.Get("build")
	done := logging.Operation(logger, "prepare")
	defer done()

	fs := req.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if req.Source == nil {
		req.Source = &skeleton.Fetcher{Cache: skeleton.NewSyncCache()}
	}
	log := diag.NewLog(logger)
	report := &Report{Diagnostics: log}

	proj, err := project.Load(req.ProjectFile)
	if err != nil {
		return report, err
	}
	report.Project = proj
	if req.TemplateGit == "" {
		req.TemplateGit = proj.TemplateGit
	}
	if req.TemplateGit == "" {
		req.TemplateGit = req.DefaultTemplateGit
	}
	if req.SourceDir == "" {
		req.SourceDir = proj.SourceDir
	}
	if err := checkRequest(fs, req); err != nil {
		return report, err
	}

	res := formatargs.DefaultSchema().Validate(fs, proj.Input(), log)
	if !res.OK {
		return report, filler.ErrInvalidArguments
	}

	desc, err := ensureSkeleton(ctx, fs, req)
	if err != nil {
		return report, err
	}
	report.Skeleton = desc
	if err := ctx.Err(); err != nil {
		return report, err
	}

	logger.Info().Str("dir", req.BuildDir).Msg("copying skeleton to build directory")
	if err := fs.RemoveAll(req.BuildDir); err != nil {
		return report, fmt.Errorf("cleaning build directory %s: %w", req.BuildDir, err)
	}
	if err := skeleton.CopyTree(fs, req.SkeletonDir, req.BuildDir); err != nil {
		return report, err
	}

	fillReport, err := filler.Fill(fs, filler.Options{
		Root:      req.BuildDir,
		Layout:    desc.Layout,
		Validated: res,
		SDKPath:   req.SDKPath,
		Log:       log,
	})
	if err != nil {
		return report, err
	}

	if err := installSources(fs, req.SourceDir, skeleton.Path(req.BuildDir, desc.Layout.PythonSources)); err != nil {
		log.Fail(diag.IOFailure, req.SourceDir, "%v", err)
		return report, err
	}

	report.OK = fillReport.OK
	return report, nil
}

func checkRequest(fs afero.Fs, req Request) error {
	var errs []error
	if req.SDKPath == "" {
		errs = append(errs, errors.New("the path to the Android SDK was not specified"))
	}
	if req.TemplateGit == "" && !skeleton.IsCheckout(fs, req.SkeletonDir) {
		errs = append(errs, errors.New("the url of the skeleton repository was not specified"))
	}
	if req.SkeletonDir == "" || req.BuildDir == "" {
		errs = append(errs, errors.New("skeleton and build directories are required"))
	}
	if req.SourceDir == "" {
		errs = append(errs, errors.New("the directory with the Python sources was not specified"))
	} else if ok, _ := afero.DirExists(fs, req.SourceDir); !ok {
		errs = append(errs, fmt.Errorf("the Python source directory %s does not exist", req.SourceDir))
	}
	return errors.Join(errs...)
}

// ensureSkeleton fetches or updates the checkout and describes it. The branch
// of an existing checkout comes from its own manifest.
func ensureSkeleton(ctx context.Context, fs afero.Fs, req Request) (*skeleton.Description, error) {
	branch := skeleton.DefaultBranch
	if skeleton.IsCheckout(fs, req.SkeletonDir) {
		if desc, err := skeleton.Describe(fs, req.SkeletonDir); err == nil {
			branch = desc.Branch
		}
	}
	if err := req.Source.Ensure(ctx, req.TemplateGit, req.SkeletonDir, branch, req.AllowUpdate); err != nil {
		return nil, fmt.Errorf("ensuring skeleton: %w", err)
	}
	return skeleton.Describe(fs, req.SkeletonDir)
}

// installSources replaces the skeleton's example Python program.
func installSources(fs afero.Fs, src, dst string) error {
	if err := fs.RemoveAll(dst); err != nil {
		return fmt.Errorf("removing skeleton python sources: %w", err)
	}
	if err := skeleton.CopyTree(fs, src, dst); err != nil {
		return fmt.Errorf("installing python sources: %w", err)
	}
	return nil
}
