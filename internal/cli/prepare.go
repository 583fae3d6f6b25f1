package cli

import (
	"fmt"
	"path/filepath"

	"github.com/Abestanis/APython-PyToApk/internal/branding"
	"github.com/Abestanis/APython-PyToApk/internal/build"
	"github.com/Abestanis/APython-PyToApk/internal/config"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// apkSubdir separates the apk skeleton and build from other targets in the
// configured template and build directories.
const apkSubdir = "apk"

func newPrepareCmd() *cobra.Command {
	var (
		projectFile string
		templateGit string
		sourceDir   string
		sdkPath     string
		offline     bool
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Prepare an Android build directory for a Python program",
		Long: `Validate the project, fetch or update the skeleton, copy it into the
build directory, fill it and install the Python sources. The result is
ready for gradle.

The skeleton checkout lives in <template_dir>/apk and the build in
<build_dir>/apk (see 'pytoapk config list').`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Current()
			if projectFile == "" {
				p, err := findProject("")
				if err != nil {
					return err
				}
				if p == nil {
					return usageError{fmt.Errorf("no %s found, use --project", branding.ProjectFile())}
				}
				projectFile = p.Path
			}
			if sdkPath == "" {
				sdkPath = settings.SDKPath
			}
			defaultGit := settings.TemplateGit
			if defaultGit == "" {
				defaultGit = branding.SkeletonRepoURL()
			}

			skeletonDir := filepath.Join(settings.TemplateDir, apkSubdir)
			allowUpdate := !offline && !settings.AvoidNetwork
			if !allowUpdate && skeleton.IsCheckout(afero.NewOsFs(), skeletonDir) && skeleton.IsStale(skeletonDir, staleAfter) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Note: skeleton in %s was not synced for over a week.\n", skeletonDir)
			}

			report, err := build.Prepare(cmd.Context(), build.Request{
				ProjectFile:        projectFile,
				TemplateGit:        templateGit,
				DefaultTemplateGit: defaultGit,
				SourceDir:          sourceDir,
				SkeletonDir:        skeletonDir,
				BuildDir:           filepath.Join(settings.BuildDir, apkSubdir),
				SDKPath:            sdkPath,
				AllowUpdate:        allowUpdate,
				Source:             &skeleton.Fetcher{Git: settings.GitPath, Cache: skeleton.NewSyncCache()},
			})
			if err != nil {
				return fmt.Errorf("preparing build: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Build directory ready: %s (%d warnings)\n",
				filepath.Join(settings.BuildDir, apkSubdir), len(report.Diagnostics.Warnings()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFile, "project", "p", "", "Project file (default: pytoapk.yaml in the current directory)")
	cmd.Flags().StringVar(&templateGit, "template-git", "", "Skeleton repository URL (overrides the project file)")
	cmd.Flags().StringVar(&sourceDir, "source-dir", "", "Directory with the Python sources (overrides the project file)")
	cmd.Flags().StringVar(&sdkPath, "sdk", "", "Android SDK path (default: sdk_path setting)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the skeleton checkout without updating it")
	return cmd
}
