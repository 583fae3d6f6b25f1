package skeleton

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// excludedNames are never copied out of a skeleton checkout.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

// CopyTree recursively copies src to dst, skipping version control metadata.
// dst must not exist or must be an empty directory.
func CopyTree(fs afero.Fs, src, dst string) error {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("reading skeleton %s: %w", src, err)
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("skeleton %s is not a directory", src)
	}
	if err := copyDir(fs, src, dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

func copyDir(fs afero.Fs, src, dst string, perm os.FileMode) error {
	if err := fs.MkdirAll(dst, perm); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fs, src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyDir(fs, srcPath, dstPath, entry.Mode().Perm()); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			if err := CopyFile(fs, srcPath, dstPath); err != nil {
				return err
			}
		}
		// Symlinks and other special files are skipped.
	}
	return nil
}

// CopyFile copies a single file, preserving its permission bits. An existing
// dst is truncated.
func CopyFile(fs afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, dst, data, info.Mode().Perm())
}
