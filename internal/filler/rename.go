package filler

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
)

// ErrNoPackageDir is returned when the package root has no child directory.
var ErrNoPackageDir = errors.New("no package directory in skeleton")

// RenamePackage renames the placeholder package directory below packageRoot
// to appID. With several candidates the lexicographically smallest name is
// renamed. Nested directories and file contents are left alone.
func RenamePackage(fs afero.Fs, root, packageRoot, appID string, log *diag.Log) error {
	dir := skeleton.Path(root, packageRoot)
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		log.Fail(diag.IOFailure, dir, "failed to list the package root: %v", err)
		return fmt.Errorf("listing package root: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			candidates = append(candidates, e.Name())
		}
	}
	slices.Sort(candidates)

	switch len(candidates) {
	case 0:
		log.Fail(diag.IOFailure, dir, "the skeleton has no package directory")
		return fmt.Errorf("%w: %s", ErrNoPackageDir, dir)
	case 1:
	default:
		log.Warn(diag.AmbiguousPackageDir, dir, "found %d package directories (%s), renaming %q",
			len(candidates), strings.Join(candidates, ", "), candidates[0])
	}

	chosen := candidates[0]
	if chosen == appID {
		return nil
	}
	from, to := filepath.Join(dir, chosen), filepath.Join(dir, appID)
	if err := fs.Rename(from, to); err != nil {
		log.Fail(diag.IOFailure, from, "failed to rename the package directory to %q: %v", appID, err)
		return fmt.Errorf("renaming package directory: %w", err)
	}
	return nil
}
