//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	RepoDir     string // git repository serving as the skeleton remote
	ProjectDir  string // project with pytoapk.yaml and src/
	SkeletonDir string // skeleton checkout
	BuildDir    string // prepared build directory
	SDKDir      string
}

// setupTestEnv creates isolated temp directories and a skeleton repository
// with a single commit on master.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	base := t.TempDir()
	env := &testEnv{
		RepoDir:     filepath.Join(base, "remote"),
		ProjectDir:  filepath.Join(base, "project"),
		SkeletonDir: filepath.Join(base, "skeletons", "apk"),
		BuildDir:    filepath.Join(base, "build", "apk"),
		SDKDir:      filepath.Join(base, "sdk"),
	}
	t.Setenv("HOME", base)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	git(t, "", "init", env.RepoDir)
	git(t, env.RepoDir, "symbolic-ref", "HEAD", "refs/heads/master")
	git(t, env.RepoDir, "config", "user.email", "test@example.com")
	git(t, env.RepoDir, "config", "user.name", "Test")

	writeFile(t, filepath.Join(env.RepoDir, "app/src/main/AndroidManifest.xml"),
		`<manifest package="/* REPLACE(20,58): appId */placeholder">`+"\n")
	writeFile(t, filepath.Join(env.RepoDir, "app/src/main/java/placeholder/Main.java"), "class Main {}\n")
	writeFile(t, filepath.Join(env.RepoDir, "app/build.gradle"), "versionCode 1 // REPLACE(13,14): appNumVersion\n")
	writeFile(t, filepath.Join(env.RepoDir, "app/src/main/res/drawable-mdpi/app_launcher_icon.png"), "icon")
	commit(t, env.RepoDir, "initial skeleton")

	writeFile(t, filepath.Join(env.ProjectDir, "src", "main.py"), "print('hello')\n")
	writeFile(t, filepath.Join(env.ProjectDir, "pytoapk.yaml"), `android_app:
  app_name: Hello
  app_tag: Hello
  app_id: com.example.hello
  app_num_version: 7
  app_window_type: TERMINAL
  app_min_sdk: 21
  app_version: "1.0"
apk:
  source_dir: src
  template_git: `+env.RepoDir+"\n")

	if err := os.MkdirAll(env.SDKDir, 0755); err != nil {
		t.Fatalf("creating sdk dir: %v", err)
	}
	return env
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

func commit(t *testing.T, dir, message string) {
	t.Helper()
	git(t, dir, "add", "-A")
	git(t, dir, "commit", "-q", "-m", message)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s to not exist", path)
	}
}
