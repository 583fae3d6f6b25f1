package project

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/pytoapk.yaml.tmpl
var templateFS embed.FS

// ErrExists is returned by Scaffold when the target file is already present.
var ErrExists = errors.New("project file already exists")

// ScaffoldData holds the variables of the starter project template.
type ScaffoldData struct {
	CLIName     string
	AppName     string // e.g., "Snake Game"
	AppTag      string // Derived: "SnakeGame"
	AppID       string // Derived: "org.example.snakegame"
	WindowType  string
	MinSdk      int
	SourceDir   string
	TemplateGit string
	Date        string
}

// NewScaffoldData creates a ScaffoldData for an app called name with the
// derived fields populated.
func NewScaffoldData(cliName, name string) *ScaffoldData {
	tag := logTag(name)
	return &ScaffoldData{
		CLIName:    cliName,
		AppName:    name,
		AppTag:     tag,
		AppID:      "org.example." + packageSegment(tag),
		WindowType: "TERMINAL",
		MinSdk:     21,
		SourceDir:  "src",
		Date:       time.Now().Format(time.DateOnly),
	}
}

// logTag joins the words of name in title case, keeping letters and digits.
func logTag(name string) string {
	caser := cases.Title(language.Und)
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(caser.String(w))
	}
	if b.Len() == 0 {
		return "App"
	}
	return b.String()
}

// packageSegment lowercases tag into a valid Java package segment.
func packageSegment(tag string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(tag) {
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	seg := b.String()
	if seg == "" || unicode.IsDigit(rune(seg[0])) {
		seg = "app" + seg
	}
	return seg
}

// Scaffold writes a starter project file into dir and returns its path.
// An existing file is never overwritten.
func Scaffold(dir string, data *ScaffoldData) (string, error) {
	path := filepath.Join(dir, FileNames[0])
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return "", fmt.Errorf("%w: %s", ErrExists, filepath.Join(dir, name))
		}
	}

	tmplBytes, err := templateFS.ReadFile("templates/pytoapk.yaml.tmpl")
	if err != nil {
		return "", fmt.Errorf("reading project template: %w", err)
	}
	tmpl, err := template.New("pytoapk.yaml").Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing project template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing project template: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
