package skeleton

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ManifestFile is the optional description a skeleton ships at its root.
const ManifestFile = "skeleton.yaml"

// SupportedFormats is the range of skeleton manifest formats this build understands.
const SupportedFormats = ">= 1.0.0, < 2.0.0"

// DefaultBranch is the remote branch a skeleton is reset to when its manifest names none.
const DefaultBranch = "master"

//go:embed schema/skeleton.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ErrIncompatibleFormat is returned for manifests outside SupportedFormats.
var ErrIncompatibleFormat = errors.New("incompatible skeleton format")

// Manifest is the parsed form of skeleton.yaml.
type Manifest struct {
	Format      string `yaml:"format" json:"format"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Branch      string `yaml:"branch,omitempty" json:"branch,omitempty"`
	Layout      struct {
		Icon            string `yaml:"icon,omitempty" json:"icon,omitempty"`
		Manifest        string `yaml:"manifest,omitempty" json:"manifest,omitempty"`
		PackageRoot     string `yaml:"packageRoot,omitempty" json:"packageRoot,omitempty"`
		LocalProperties string `yaml:"localProperties,omitempty" json:"localProperties,omitempty"`
		PythonSources   string `yaml:"pythonSources,omitempty" json:"pythonSources,omitempty"`
	} `yaml:"layout,omitempty" json:"layout,omitempty"`
	Substitute struct {
		Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	} `yaml:"substitute,omitempty" json:"substitute,omitempty"`
}

// Description bundles what a skeleton tells the filler about itself.
type Description struct {
	// Manifest is nil for skeletons without skeleton.yaml.
	Manifest *Manifest
	Layout   Layout
	Branch   string
}

// ValidationIssue is one schema violation found in skeleton.yaml.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/layout/icon"
	Message string
	Keyword string
}

// ValidationError lists every schema violation of a manifest.
type ValidationError struct {
	File   string
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
		if issue.Path != "" {
			msgs[i] = issue.Path + ": " + issue.Message
		}
	}
	return fmt.Sprintf("invalid %s: %s", e.File, strings.Join(msgs, "; "))
}

// Describe reads root/skeleton.yaml, validates it and merges its layout over
// DefaultLayout. A skeleton without the file gets the defaults.
func Describe(fs afero.Fs, root string) (*Description, error) {
	path := filepath.Join(root, ManifestFile)
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Description{Layout: DefaultLayout(), Branch: DefaultBranch}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading skeleton manifest %s: %w", path, err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.File = path
		}
		return nil, err
	}

	layout := DefaultLayout().merge(Layout{
		Icon:            m.Layout.Icon,
		Manifest:        m.Layout.Manifest,
		PackageRoot:     m.Layout.PackageRoot,
		LocalProperties: m.Layout.LocalProperties,
		PythonSources:   m.Layout.PythonSources,
		Extensions:      m.Substitute.Extensions,
	})
	branch := m.Branch
	if branch == "" {
		branch = DefaultBranch
	}
	return &Description{Manifest: m, Layout: layout, Branch: branch}, nil
}

// ParseManifest validates raw skeleton.yaml bytes against the embedded
// schema, checks the format version and decodes the manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	issues, err := validate(data)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, &ValidationError{File: ManifestFile, Issues: issues}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing skeleton manifest: %w", err)
	}
	if err := checkFormat(m.Format); err != nil {
		return nil, err
	}
	return &m, nil
}

func checkFormat(format string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(format, "v"))
	if err != nil {
		return fmt.Errorf("parsing skeleton format %q: %w", format, err)
	}
	c, err := semver.NewConstraint(SupportedFormats)
	if err != nil {
		return fmt.Errorf("parsing supported formats: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s is outside %s", ErrIncompatibleFormat, v, SupportedFormats)
	}
	return nil
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("skeleton.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("skeleton.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validate returns the schema violations of data. The error is reserved for
// unparsable input and schema compilation problems.
func validate(data []byte) ([]ValidationIssue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}, nil
	}
	return dedupe(issues), nil
}

// collectIssues walks the error tree and keeps the leaves.
func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}
	*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
}

func dedupe(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var out []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}
	return out
}
