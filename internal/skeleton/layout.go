package skeleton

import (
	"path/filepath"
	"slices"
)

// Layout holds the fixed paths a skeleton exposes to the filler. Paths are
// slash separated and relative to the skeleton root.
type Layout struct {
	Icon            string
	Manifest        string
	PackageRoot     string
	LocalProperties string
	PythonSources   string
	// Extensions lists the file extensions whose lines are scanned for directives.
	Extensions []string
}

// DefaultLayout is used for skeletons that ship no skeleton.yaml.
func DefaultLayout() Layout {
	return Layout{
		Icon:            "app/src/main/res/drawable-mdpi/app_launcher_icon.png",
		Manifest:        "app/src/main/AndroidManifest.xml",
		PackageRoot:     "app/src/main/java",
		LocalProperties: "local.properties",
		PythonSources:   "app/src/main/python",
		Extensions:      []string{".java", ".xml", ".gradle"},
	}
}

// Path joins a layout path onto root using the host separator.
func Path(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// Eligible reports whether the file name has a substitutable extension.
func (l Layout) Eligible(name string) bool {
	return slices.Contains(l.Extensions, filepath.Ext(name))
}

// merge overlays the non-empty fields of o onto l.
func (l Layout) merge(o Layout) Layout {
	if o.Icon != "" {
		l.Icon = o.Icon
	}
	if o.Manifest != "" {
		l.Manifest = o.Manifest
	}
	if o.PackageRoot != "" {
		l.PackageRoot = o.PackageRoot
	}
	if o.LocalProperties != "" {
		l.LocalProperties = o.LocalProperties
	}
	if o.PythonSources != "" {
		l.PythonSources = o.PythonSources
	}
	if len(o.Extensions) > 0 {
		l.Extensions = slices.Clone(o.Extensions)
	}
	return l
}
