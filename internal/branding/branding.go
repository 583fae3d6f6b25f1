// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into
// the binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	ProjectFile     string `yaml:"project_file"`
	SkeletonRepoURL string `yaml:"skeleton_repo_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:     "pytoapk",
			DisplayName: "PyToApk",
			Description: "Package Python programs as Android apps",
			HomeDir:     ".pytoapk",
			EnvPrefix:   "PYTOAPK",
			ProjectFile: "pytoapk.yaml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "pytoapk").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".pytoapk").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PYTOAPK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ProjectFile returns the default project file name.
func ProjectFile() string { load(); return defaults.ProjectFile }

// SkeletonRepoURL returns the skeleton repository used when neither the
// settings nor the project name one. Empty unless set in branding.yaml.
func SkeletonRepoURL() string { load(); return defaults.SkeletonRepoURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("sdk_path") → "PYTOAPK_SDK_PATH".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
