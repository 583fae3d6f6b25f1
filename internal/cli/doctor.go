package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Abestanis/APython-PyToApk/internal/config"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the build environment",
		Long: `Check that git and the Android SDK can be found and that the skeleton
checkout and build directories are usable.

With --fix, missing directories are created.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Current()
			w := cmd.OutOrStdout()
			problems := 0

			fmt.Fprintln(w, "Tools:")
			problems += checkGit(w, settings.GitPath)
			problems += checkSDK(w, settings.SDKPath)

			fmt.Fprintln(w, "Directories:")
			problems += checkDir(w, settings.TemplateDir, fix)
			problems += checkDir(w, settings.BuildDir, fix)

			fmt.Fprintln(w, "Skeleton:")
			problems += checkSkeleton(w, filepath.Join(settings.TemplateDir, apkSubdir))

			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			fmt.Fprintln(w, "No problems found.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Create missing directories")
	return cmd
}

func checkGit(w io.Writer, gitPath string) int {
	path, err := exec.LookPath(gitPath)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s not found, set git_path\n", gitPath)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] git: %s\n", path)
	return 0
}

func checkSDK(w io.Writer, sdkPath string) int {
	if sdkPath == "" {
		fmt.Fprintln(w, "  [MISS] Android SDK not configured, set sdk_path or ANDROID_HOME")
		return 1
	}
	info, err := os.Stat(sdkPath)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] Android SDK %s is not a directory\n", sdkPath)
		return 1
	}
	if _, err := os.Stat(filepath.Join(sdkPath, "platforms")); err != nil {
		fmt.Fprintf(w, "  [WARN] %s has no platforms directory\n", sdkPath)
		return 0
	}
	fmt.Fprintf(w, "  [ OK ] Android SDK: %s\n", sdkPath)
	return 0
}

func checkDir(w io.Writer, path string, fix bool) int {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if !fix {
			fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
			return 0
		}
		if mkErr := os.MkdirAll(path, 0755); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return 1
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", path)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return 0
}

func checkSkeleton(w io.Writer, dir string) int {
	if !skeleton.IsCheckout(afero.NewOsFs(), dir) {
		fmt.Fprintf(w, "  [MISS] no checkout in %s, run 'skeleton fetch' or 'prepare'\n", dir)
		return 0
	}
	desc, err := skeleton.Describe(afero.NewOsFs(), dir)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s (branch %s, last synced %s)\n", dir, desc.Branch, syncStatus(dir))
	return 0
}
