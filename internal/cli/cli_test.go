package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (Outcome, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANDROID_HOME", "")
	t.Setenv("ANDROID_SDK_ROOT", "")
	t.Setenv("PYTOAPK_SDK_PATH", "")
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out, errOut bytes.Buffer
	outcome := Run(context.Background(), args, &out, &errOut)
	return outcome, out.String(), errOut.String()
}

func writeSkeleton(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app/src/main/AndroidManifest.xml":        `<manifest package="/* REPLACE(20,58): appId */placeholder">` + "\n",
		"app/src/main/java/placeholder/Main.java": "class Main {}\n",
		"app/build.gradle":                        "versionCode 1 // REPLACE(13,14): appNumVersion\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

var validSets = []string{
	"--set", "appLogTag=Demo",
	"--set", "windowType=SDL",
	"--set", "appId=com.example.demo",
	"--set", "appName=Demo",
	"--set", "appMinSdk=21",
	"--set", "appNumVersion=5",
	"--set", "appVersion=1.0",
}

func TestRunOutcomes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind OutcomeKind
		code int
	}{
		{"no arguments shows help", nil, HelpRequested, 0},
		{"help flag", []string{"--help"}, HelpRequested, 0},
		{"help on subcommand", []string{"fill", "--help"}, HelpRequested, 0},
		{"group without subcommand", []string{"skeleton"}, HelpRequested, 0},
		{"unknown command", []string{"build-apk"}, InvalidArguments, 2},
		{"unknown flag", []string{"version", "--bogus"}, InvalidArguments, 2},
		{"missing positional", []string{"fill"}, InvalidArguments, 2},
		{"malformed set", []string{"fill", "--no-project", "--set", "novalue", "dir"}, InvalidArguments, 2},
		{"unknown setting", []string{"config", "set", "mirror", "x"}, InvalidArguments, 2},
		{"version", []string{"version", "--short"}, Completed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, _, _ := run(t, tt.args...)
			assert.Equal(t, tt.kind, outcome.Kind, "err: %v", outcome.Err)
			assert.Equal(t, tt.code, outcome.ExitCode())
		})
	}
}

func TestVersionShort(t *testing.T) {
	outcome, out, _ := run(t, "version", "--short")
	assert.Equal(t, Completed, outcome.Kind)
	assert.Equal(t, "dev\n", out)
}

func TestFillCommand(t *testing.T) {
	dir := writeSkeleton(t)
	args := append([]string{"fill", "--no-project", "--sdk", `C:\sdk`}, validSets...)
	outcome, out, _ := run(t, append(args, dir)...)
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.Contains(t, out, "Filled "+dir)

	manifest, err := os.ReadFile(filepath.Join(dir, "app", "src", "main", "AndroidManifest.xml"))
	require.NoError(t, err)
	assert.Equal(t, `<manifest package="com.example.demo">`+"\n", string(manifest))

	gradle, err := os.ReadFile(filepath.Join(dir, "app", "build.gradle"))
	require.NoError(t, err)
	assert.Equal(t, "versionCode 5 // REPLACE(13,14): appNumVersion\n", string(gradle))

	props, err := os.ReadFile(filepath.Join(dir, "local.properties"))
	require.NoError(t, err)
	assert.Equal(t, `sdk.dir=C\:\\sdk`, string(props))
	assert.DirExists(t, filepath.Join(dir, "app", "src", "main", "java", "com.example.demo"))
}

func TestFillCommandInvalidArguments(t *testing.T) {
	dir := writeSkeleton(t)
	args := append([]string{"fill", "--no-project"}, validSets...)
	args = append(args, "--set", "appNumVersion=0", dir)

	outcome, _, errOut := run(t, args...)
	assert.Equal(t, Failed, outcome.Kind)
	assert.Equal(t, 1, outcome.ExitCode())
	assert.Contains(t, errOut, "invalid format arguments")
	assert.DirExists(t, filepath.Join(dir, "app", "src", "main", "java", "placeholder"))
	assert.NoFileExists(t, filepath.Join(dir, "local.properties"))
}

func TestValidateCommand(t *testing.T) {
	outcome, out, _ := run(t, append([]string{"validate", "--no-project", "--set", "extra=1"}, validSets...)...)
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.Contains(t, out, "[UNKNOWN_ARGUMENT] extra")
	assert.Contains(t, out, "[NO_ICON]")
	assert.Contains(t, out, "Format arguments are valid")

	outcome, out, _ = run(t, "validate", "--no-project", "--set", "appId=3bad.pkg", "--icon", "/missing/icon.png")
	assert.Equal(t, Failed, outcome.Kind)
	assert.Contains(t, out, "error [INVALID_ARGUMENT_VALUE] appId")
	assert.Contains(t, out, "error [MISSING_RESOURCE_FILE] /missing/icon.png")
}

func TestValidateCommandWithProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pytoapk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`android_app:
  app_tag: Demo
  app_window_type: SDL
  app_id: com.example.demo
  app_name: Demo
  app_min_sdk: 21
  app_num_version: 5
  app_version: "1.0"
`), 0644))

	outcome, out, _ := run(t, "validate", "--project", path, "--set", "appNumVersion=6")
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.NotContains(t, out, "MISSING_ARGUMENT_NO_DEFAULT")
}

func TestSkeletonInfoDefaults(t *testing.T) {
	dir := t.TempDir()
	outcome, out, _ := run(t, "skeleton", "info", dir)
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.Contains(t, out, "skeleton.yaml missing")
	assert.Contains(t, out, "app/src/main/java")
	assert.Contains(t, out, ".java .xml .gradle")
}

func TestConfigSetAndGet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ANDROID_HOME", "")
	t.Setenv("ANDROID_SDK_ROOT", "")
	t.Setenv("PYTOAPK_SDK_PATH", "")
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out, errOut bytes.Buffer
	outcome := Run(context.Background(), []string{"config", "set", "sdk_path", "/opt/sdk"}, &out, &errOut)
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.FileExists(t, filepath.Join(home, ".pytoapk", "config.yaml"))

	viper.Reset()
	out.Reset()
	outcome = Run(context.Background(), []string{"config", "get", "sdk_path"}, &out, &errOut)
	require.Equal(t, Completed, outcome.Kind)
	assert.Equal(t, "/opt/sdk\n", out.String())
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	outcome, out, _ := run(t, "init", "--dir", dir, "Snake Game")
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.Contains(t, out, "org.example.snakegame")
	assert.FileExists(t, filepath.Join(dir, "pytoapk.yaml"))

	outcome, out, _ = run(t, "validate", "--project", filepath.Join(dir, "pytoapk.yaml"))
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.Contains(t, out, "Format arguments are valid")

	outcome, _, _ = run(t, "init", "--dir", dir, "Snake Game")
	assert.Equal(t, InvalidArguments, outcome.Kind)
}

func TestSkeletonInfoShowsSyncStatus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))

	outcome, out, _ := run(t, "skeleton", "info", dir)
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.Contains(t, out, "Last synced:      unknown")
}

func TestDoctorCommand(t *testing.T) {
	home := t.TempDir()
	sdk := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sdk, "platforms"), 0755))

	t.Setenv("HOME", home)
	t.Setenv("ANDROID_SDK_ROOT", "")
	t.Setenv("PYTOAPK_SDK_PATH", "")
	t.Setenv("PYTOAPK_GIT_PATH", "sh")
	t.Setenv("ANDROID_HOME", sdk)
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out, errOut bytes.Buffer
	outcome := Run(context.Background(), []string{"doctor", "--fix"}, &out, &errOut)
	require.Equal(t, Completed, outcome.Kind, "err: %v\n%s", outcome.Err, out.String())
	assert.Contains(t, out.String(), "[ OK ] Android SDK: "+sdk)
	assert.Contains(t, out.String(), "[FIX ] Created "+filepath.Join(home, ".pytoapk", "skeletons"))
	assert.Contains(t, out.String(), "No problems found.")
	assert.DirExists(t, filepath.Join(home, ".pytoapk", "build"))
}

func TestDoctorCommandReportsMissingSDK(t *testing.T) {
	outcome, out, _ := run(t, "doctor")
	assert.Equal(t, Failed, outcome.Kind)
	assert.Contains(t, out, "[MISS] Android SDK not configured")
}

func TestValidateCommandWithoutProjectInWorkingDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	outcome, out, _ := run(t, append([]string{"-vv", "validate"}, validSets...)...)
	require.Equal(t, Completed, outcome.Kind, "err: %v", outcome.Err)
	assert.Contains(t, out, "Format arguments are valid")
}
