package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Abestanis/APython-PyToApk/internal/branding"
	"github.com/Abestanis/APython-PyToApk/internal/config"
	"github.com/Abestanis/APython-PyToApk/internal/project"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		dir   string
		appID string
	)

	cmd := &cobra.Command{
		Use:   "init <app-name>",
		Short: "Create a starter project file",
		Long: `Write a pytoapk.yaml with the app options filled in from the app name.

The log tag and the app id are derived from the name and can be edited
afterwards. The template_git setting, when set, is recorded in the file.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				dir = wd
			}

			data := project.NewScaffoldData(branding.CLIName(), args[0])
			if appID != "" {
				data.AppID = appID
			}
			data.TemplateGit = config.Current().TemplateGit

			path, err := project.Scaffold(dir, data)
			if errors.Is(err, project.ErrExists) {
				return usageError{err}
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Created %s\n", path)
			fmt.Fprintf(w, "  app id:  %s\n", data.AppID)
			fmt.Fprintf(w, "  log tag: %s\n", data.AppTag)
			fmt.Fprintf(w, "Put the Python sources into %s and run '%s prepare'.\n",
				filepath.Join(dir, data.SourceDir), branding.CLIName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to create the project file in (default: current directory)")
	cmd.Flags().StringVar(&appID, "app-id", "", "Java package identifier (default: derived from the app name)")
	return cmd
}
