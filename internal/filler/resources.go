package filler

import (
	"fmt"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
)

// SwapResources replaces the skeleton's manifest and icon with the supplied
// files. Either step is skipped when its path is empty. The manifest is
// copied verbatim; its directives are resolved by the following walk.
func SwapResources(fs afero.Fs, root string, layout skeleton.Layout, res formatargs.Resources, log *diag.Log) error {
	if err := swap(fs, res.Manifest, skeleton.Path(root, layout.Manifest), "manifest", log); err != nil {
		return err
	}
	return swap(fs, res.Icon, skeleton.Path(root, layout.Icon), "icon", log)
}

func swap(fs afero.Fs, src, dst, what string, log *diag.Log) error {
	if src == "" {
		return nil
	}
	if _, err := fs.Stat(dst); err != nil {
		log.Fail(diag.IOFailure, dst, "the skeleton has no default %s to replace: %v", what, err)
		return fmt.Errorf("replacing %s: %w", what, err)
	}
	if err := fs.Remove(dst); err != nil {
		log.Fail(diag.IOFailure, dst, "failed to remove the default %s: %v", what, err)
		return fmt.Errorf("removing default %s: %w", what, err)
	}
	if err := skeleton.CopyFile(fs, src, dst); err != nil {
		log.Fail(diag.IOFailure, dst, "failed to copy %s from %s: %v", what, src, err)
		return fmt.Errorf("copying %s: %w", what, err)
	}
	return nil
}
