package skeleton

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Abestanis/APython-PyToApk/internal/logging"
	"github.com/spf13/afero"
)

// tmpSuffix is appended to the target directory during an atomic clone.
const tmpSuffix = ".tmp"

// SyncCache remembers which skeleton checkouts were already synchronized
// during one invocation so they are not fetched twice. It is not safe for
// concurrent use and should not outlive the invocation that created it.
type SyncCache struct {
	synced map[string]bool
}

// NewSyncCache returns an empty cache.
func NewSyncCache() *SyncCache {
	return &SyncCache{synced: make(map[string]bool)}
}

// Synced reports whether dir was synchronized through this cache.
func (c *SyncCache) Synced(dir string) bool {
	if c == nil {
		return false
	}
	return c.synced[filepath.Clean(dir)]
}

// MarkSynced records dir as synchronized.
func (c *SyncCache) MarkSynced(dir string) {
	if c == nil {
		return
	}
	c.synced[filepath.Clean(dir)] = true
}

// Runner executes git with args inside dir ("" for the current directory)
// and returns its combined output.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Fetcher clones and updates skeleton checkouts with the git command line.
type Fetcher struct {
	Git   string // git executable, "git" when empty
	Cache *SyncCache
	// Run overrides command execution, mostly for tests.
	Run Runner
}

// IsCheckout reports whether dir on fs holds a git working tree.
func IsCheckout(fs afero.Fs, dir string) bool {
	ok, err := afero.DirExists(fs, filepath.Join(dir, ".git"))
	return err == nil && ok
}

// Ensure makes dir a checkout of url. An existing checkout is reset to
// origin/branch when allowUpdate is set and it was not synchronized yet
// during this invocation; otherwise it is used as is.
func (f *Fetcher) Ensure(ctx context.Context, url, dir, branch string, allowUpdate bool) error {
	logger := logging.Get("skeleton")

	if IsCheckout(afero.NewOsFs(), dir) {
		if !allowUpdate || f.Cache.Synced(dir) {
			logger.Debug().Str("dir", dir).Msg("using skeleton checkout without update")
			return nil
		}
		logger.Info().Str("dir", dir).Str("branch", branch).Msg("updating skeleton")
		if err := f.update(ctx, dir, branch); err != nil {
			return err
		}
		f.markSynced(dir)
		return nil
	}

	if url == "" {
		return fmt.Errorf("no skeleton repository configured and %s is not a checkout", dir)
	}
	logger.Info().Str("url", url).Str("dir", dir).Msg("cloning skeleton")
	if err := f.clone(ctx, url, dir); err != nil {
		return err
	}
	f.markSynced(dir)
	return nil
}

func (f *Fetcher) markSynced(dir string) {
	f.Cache.MarkSynced(dir)
	if err := WriteSyncMarker(dir); err != nil {
		logger := logging.Get("skeleton")
		logger.Warn().Err(err).Str("dir", dir).Msg("could not write sync marker")
	}
}

func (f *Fetcher) update(ctx context.Context, dir, branch string) error {
	steps := [][]string{
		{"fetch", "origin"},
		{"reset", "--hard", "origin/" + branch},
		{"clean", "-d", "-f"},
	}
	for _, args := range steps {
		if err := f.git(ctx, dir, args...); err != nil {
			return fmt.Errorf("updating skeleton in %s: %w", dir, err)
		}
	}
	return nil
}

// clone writes to a temporary directory first and renames it on success.
func (f *Fetcher) clone(ctx context.Context, url, dir string) error {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return fmt.Errorf("cloning skeleton from %s: %s is an existing file", url, dir)
	}

	tmpDir := dir + tmpSuffix
	_ = os.RemoveAll(tmpDir)
	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if err := f.git(ctx, "", "clone", "--progress", url, tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning skeleton from %s: %w", url, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing skeleton dir: %w", err)
	}
	if err := os.Rename(tmpDir, dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing skeleton clone: %w", err)
	}
	return nil
}

func (f *Fetcher) git(ctx context.Context, dir string, args ...string) error {
	run := f.Run
	if run == nil {
		run = f.execGit
	}
	logger := logging.Get("skeleton")
	logger.Debug().Strs("args", args).Str("dir", dir).Msg("running git")
	output, err := run(ctx, dir, args...)
	if err != nil {
		return fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (f *Fetcher) execGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	gitPath := f.Git
	if gitPath == "" {
		gitPath = "git"
	}
	if _, err := exec.LookPath(gitPath); err != nil {
		return nil, errors.New("git is required but was not found")
	}
	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
