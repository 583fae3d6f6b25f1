package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Abestanis/APython-PyToApk/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeySDKPath      = "sdk_path"
	KeyGitPath      = "git_path"
	KeyTemplateGit  = "template_git"
	KeyBuildDir     = "build_dir"
	KeyTemplateDir  = "template_dir"
	KeyAvoidNetwork = "avoid_network"
)

// Keys lists every setting understood by pytoapk.
var Keys = []string{KeySDKPath, KeyGitPath, KeyTemplateGit, KeyBuildDir, KeyTemplateDir, KeyAvoidNetwork}

// Settings is a snapshot of the effective configuration.
type Settings struct {
	SDKPath      string
	GitPath      string
	TemplateGit  string
	BuildDir     string
	TemplateDir  string
	AvoidNetwork bool
}

// Dir returns the path to the pytoapk config directory (~/.pytoapk/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pytoapk/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Besides PYTOAPK_SDK_PATH the SDK location is taken from ANDROID_HOME and
// ANDROID_SDK_ROOT.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	_ = viper.BindEnv(KeySDKPath, branding.EnvVar(KeySDKPath), "ANDROID_HOME", "ANDROID_SDK_ROOT")

	viper.SetDefault(KeyGitPath, "git")
	viper.SetDefault(KeyBuildDir, filepath.Join(Dir(), "build"))
	viper.SetDefault(KeyTemplateDir, filepath.Join(Dir(), "skeletons"))
	viper.SetDefault(KeyAvoidNetwork, false)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the effective settings.
func Current() Settings {
	return Settings{
		SDKPath:      viper.GetString(KeySDKPath),
		GitPath:      viper.GetString(KeyGitPath),
		TemplateGit:  viper.GetString(KeyTemplateGit),
		BuildDir:     viper.GetString(KeyBuildDir),
		TemplateDir:  viper.GetString(KeyTemplateDir),
		AvoidNetwork: viper.GetBool(KeyAvoidNetwork),
	}
}

// Known reports whether key is a recognized setting.
func Known(key string) bool {
	return slices.Contains(Keys, strings.ToLower(key))
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !Known(key) {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
