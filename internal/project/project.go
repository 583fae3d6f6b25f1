package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/Abestanis/APython-PyToApk/internal/logging"
	"github.com/spf13/viper"
)

const (
	// AppSection holds the format arguments of the app.
	AppSection = "android_app"
	// BuildSection holds the build inputs of the prepare command.
	BuildSection = "apk"
)

// FileNames are tried in order by Find.
var FileNames = []string{"pytoapk.yaml", "pytoapk.yml", "pytoapk.toml", "pytoapk.json"}

// ErrNotFound is returned by Find when a directory has no project file.
var ErrNotFound = errors.New("no project file found")

// optionArgs maps project file options onto format argument names.
var optionArgs = map[string]string{
	"app_name":           formatargs.AppName,
	"app_tag":            formatargs.AppLogTag,
	"app_id":             formatargs.AppID,
	"app_num_version":    formatargs.AppNumVersion,
	"app_version":        formatargs.AppVersion,
	"app_window_type":    formatargs.WindowType,
	"app_min_sdk":        formatargs.AppMinSdk,
	"app_target_sdk":     formatargs.AppTargetSdk,
	"min_python_version": formatargs.MinPyVersion,
	"requirements":       formatargs.Requirements,
}

const (
	optionIcon     = "app_icon"
	optionManifest = "app_manifest_template"
)

// Project is a loaded project file.
type Project struct {
	// Path is the absolute path of the file.
	Path string
	// Args holds the format arguments. Options without a known mapping are
	// passed through under their own name so validation reports them.
	Args      map[string]string
	Resources formatargs.Resources
	// SourceDir and TemplateGit come from the apk section. SourceDir is absolute.
	SourceDir   string
	TemplateGit string
}

// Dir returns the directory containing the project file.
func (p *Project) Dir() string { return filepath.Dir(p.Path) }

// Input returns the validation input described by the project.
func (p *Project) Input() formatargs.Input {
	args := make(map[string]string, len(p.Args))
	for k, v := range p.Args {
		args[k] = v
	}
	return formatargs.Input{Args: args, Resources: p.Resources}
}

// Find returns the first project file in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (tried %v)", ErrNotFound, dir, FileNames)
}

// Load reads a project file. The format follows the file extension. Relative
// paths inside the file are resolved against the file's directory.
func Load(path string) (*Project, error) {
	logger := logging.Get("project")

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(abs)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", abs, err)
	}

	p := &Project{Path: abs, Args: make(map[string]string)}
	dir := filepath.Dir(abs)

	if !v.IsSet(AppSection) {
		logger.Warn().Str("file", abs).Msgf("no %q section found, the skeleton defaults will be used", AppSection)
	}
	options, err := readSection(abs, v, AppSection)
	if err != nil {
		return nil, fmt.Errorf("reading %s section of %s: %w", AppSection, abs, err)
	}
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := options[name]
		switch name {
		case optionIcon:
			p.Resources.Icon = resolve(dir, value)
		case optionManifest:
			p.Resources.Manifest = resolve(dir, value)
		default:
			if arg, ok := optionArgs[name]; ok {
				p.Args[arg] = value
			} else {
				p.Args[name] = value
			}
		}
	}

	build := v.GetStringMapString(BuildSection)
	p.SourceDir = resolve(dir, build["source_dir"])
	p.TemplateGit = build["template_git"]

	logger.Debug().Str("file", abs).Int("arguments", len(p.Args)).Msg("project loaded")
	return p, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
