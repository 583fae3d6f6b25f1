package filler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/directive"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/Abestanis/APython-PyToApk/internal/skeleton"
	"github.com/spf13/afero"
)

// FillTree resolves the directives of every eligible file below root. Files
// are always rewritten, even when no line changed. Directive problems are
// recorded as warnings; only I/O errors stop the walk.
func FillTree(fs afero.Fs, root string, layout skeleton.Layout, values formatargs.Values, log *diag.Log) error {
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() || !layout.Eligible(info.Name()) {
			return nil
		}
		return fillFile(fs, root, path, info.Mode().Perm(), values, log)
	})
	if err != nil {
		log.Fail(diag.IOFailure, root, "filling the skeleton failed: %v", err)
		return fmt.Errorf("filling %s: %w", root, err)
	}
	return nil
}

func fillFile(fs afero.Fs, root, path string, perm os.FileMode, values formatargs.Values, log *diag.Log) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	var out strings.Builder
	out.Grow(len(data))
	for i, line := range strings.SplitAfter(string(data), "\n") {
		if line == "" {
			continue
		}
		body, eol := splitTerminator(line)
		subject := rel + ":" + strconv.Itoa(i+1)
		out.WriteString(directive.Resolve(body, values, subject, log))
		out.WriteString(eol)
	}

	if err := afero.WriteFile(fs, path, []byte(out.String()), perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// splitTerminator separates a trailing "\n" or "\r\n" from line.
func splitTerminator(line string) (body, eol string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
