package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abestanis/APython-PyToApk/internal/branding"
	"github.com/Abestanis/APython-PyToApk/internal/config"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newSkeletonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skeleton",
		Short: "Manage the app skeleton checkout",
		Long: `Manage the git checkout of the Android app skeleton that builds start from.

The checkout is stored in <template_dir>/apk.`,
	}
	cmd.AddCommand(newSkeletonFetchCmd())
	cmd.AddCommand(newSkeletonInfoCmd())
	return cmd
}

func newSkeletonFetchCmd() *cobra.Command {
	var (
		url      string
		noUpdate bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Clone or update the skeleton",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Current()
			if url == "" {
				url = settings.TemplateGit
			}
			if url == "" {
				url = branding.SkeletonRepoURL()
			}
			dir := filepath.Join(settings.TemplateDir, apkSubdir)

			branch := skeleton.DefaultBranch
			if skeleton.IsCheckout(afero.NewOsFs(), dir) {
				if desc, err := skeleton.Describe(afero.NewOsFs(), dir); err == nil {
					branch = desc.Branch
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Fetching skeleton into %s...\n", dir)
			f := &skeleton.Fetcher{Git: settings.GitPath, Cache: skeleton.NewSyncCache()}
			if err := f.Ensure(cmd.Context(), url, dir, branch, !noUpdate && !settings.AvoidNetwork); err != nil {
				return fmt.Errorf("fetching skeleton: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Skeleton is up to date.")
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Skeleton repository URL (default: template_git setting)")
	cmd.Flags().BoolVar(&noUpdate, "no-update", false, "Only clone, never update an existing checkout")
	return cmd
}

func newSkeletonInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [dir]",
		Short: "Show the layout a skeleton declares",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Join(config.Current().TemplateDir, apkSubdir)
			if len(args) == 1 {
				dir = args[0]
			}

			desc, err := skeleton.Describe(afero.NewOsFs(), dir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Path:             %s\n", dir)
			if desc.Manifest == nil {
				fmt.Fprintf(w, "Manifest:         none (%s missing, using defaults)\n", skeleton.ManifestFile)
			} else {
				fmt.Fprintf(w, "Name:             %s\n", desc.Manifest.Name)
				fmt.Fprintf(w, "Format:           %s\n", desc.Manifest.Format)
			}
			fmt.Fprintf(w, "Branch:           %s\n", desc.Branch)
			if skeleton.IsCheckout(afero.NewOsFs(), dir) {
				fmt.Fprintf(w, "Last synced:      %s\n", syncStatus(dir))
			}
			fmt.Fprintf(w, "Icon:             %s\n", desc.Layout.Icon)
			fmt.Fprintf(w, "Manifest file:    %s\n", desc.Layout.Manifest)
			fmt.Fprintf(w, "Package root:     %s\n", desc.Layout.PackageRoot)
			fmt.Fprintf(w, "Local properties: %s\n", desc.Layout.LocalProperties)
			fmt.Fprintf(w, "Python sources:   %s\n", desc.Layout.PythonSources)
			fmt.Fprintf(w, "Extensions:       %s\n", strings.Join(desc.Layout.Extensions, " "))
			return nil
		},
	}
}

// staleAfter is the age after which a skeleton checkout is reported stale.
const staleAfter = 7 * 24 * time.Hour

func syncStatus(dir string) string {
	last := skeleton.LastSynced(dir)
	if last.IsZero() {
		return "unknown"
	}
	status := last.Local().Format(time.DateTime)
	if skeleton.IsStale(dir, staleAfter) {
		status += " (stale, run \"skeleton fetch\")"
	}
	return status
}
