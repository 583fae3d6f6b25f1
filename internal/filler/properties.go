package filler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var propertyEscaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`)

// LocalProperties renders the local.properties content pointing the Android
// build at sdkPath.
func LocalProperties(sdkPath string) string {
	return "sdk.dir=" + propertyEscaper.Replace(sdkPath)
}

// WriteLocalProperties writes LocalProperties(sdkPath) to path, replacing
// any previous file.
func WriteLocalProperties(fs afero.Fs, path, sdkPath string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, []byte(LocalProperties(sdkPath)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
