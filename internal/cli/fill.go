package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/Abestanis/APython-PyToApk/internal/config"
	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/filler"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/Abestanis/APython-PyToApk/internal/logging"
	"github.com/Abestanis/APython-PyToApk/internal/project"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// inputFlags are shared by the commands that build a validation input.
type inputFlags struct {
	projectFile string
	noProject   bool
	sets        []string
	icon        string
	manifest    string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.projectFile, "project", "p", "", "Project file (default: pytoapk.yaml in the current directory)")
	cmd.Flags().BoolVar(&f.noProject, "no-project", false, "Do not read a project file")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "Set a format argument (key=value, repeatable)")
	cmd.Flags().StringVar(&f.icon, "icon", "", "Replacement launcher icon")
	cmd.Flags().StringVar(&f.manifest, "manifest", "", "Replacement AndroidManifest.xml template")
}

// input merges the project file with the command line overrides.
func (f *inputFlags) input() (formatargs.Input, error) {
	overrides, err := parseSets(f.sets)
	if err != nil {
		return formatargs.Input{}, err
	}

	in := formatargs.Input{Args: make(map[string]string)}
	if !f.noProject {
		p, err := findProject(f.projectFile)
		if err != nil {
			return formatargs.Input{}, err
		}
		if p != nil {
			in = p.Input()
		}
	}
	maps.Copy(in.Args, overrides)
	if f.icon != "" {
		in.Resources.Icon = f.icon
	}
	if f.manifest != "" {
		in.Resources.Manifest = f.manifest
	}
	return in, nil
}

// findProject loads path, or the project file of the working directory when
// path is empty. A missing implicit project file is not an error.
func findProject(path string) (*project.Project, error) {
	if path != "" {
		return project.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	found, err := project.Find(wd)
	if errors.Is(err, project.ErrNotFound) {
		logger := logging.Get("cli")
		logger.Debug().Str("dir", wd).Msg("no project file found")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return project.Load(found)
}

func parseSets(sets []string) (map[string]string, error) {
	out := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, usageError{fmt.Errorf("invalid --set %q, expected key=value", s)}
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}

func printDiagnostics(w io.Writer, log *diag.Log) {
	for _, d := range log.Entries() {
		fmt.Fprintln(w, d.String())
	}
}

func newFillCmd() *cobra.Command {
	var (
		flags   inputFlags
		sdkPath string
	)

	cmd := &cobra.Command{
		Use:   "fill <skeleton-dir>",
		Short: "Fill a skeleton directory in place",
		Long: `Validate the format arguments and fill the skeleton in <skeleton-dir>.

Arguments come from the project file's android_app section and can be
overridden with --set. Nothing is written when validation fails. Directive
warnings are logged; run with -v for details.`,
		Example: `  pytoapk fill build/apk
  pytoapk fill --no-project --set appId=com.example.app --set appNumVersion=3 build/apk`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			in, err := flags.input()
			if err != nil {
				return err
			}
			if sdkPath == "" {
				sdkPath = config.Current().SDKPath
			}

			fs := afero.NewOsFs()
			desc, err := skeleton.Describe(fs, root)
			if err != nil {
				return err
			}

			log := diag.NewLog(logging.Get("fill"))
			report, err := filler.Fill(fs, filler.Options{
				Root:    root,
				Layout:  desc.Layout,
				Input:   in,
				SDKPath: sdkPath,
				Log:     log,
			})
			if err != nil {
				return fmt.Errorf("filling %s: %w", root, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filled %s (%d warnings)\n", root, len(report.Diagnostics.Warnings()))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&sdkPath, "sdk", "", "Android SDK path written to local.properties (default: sdk_path setting)")
	return cmd
}
