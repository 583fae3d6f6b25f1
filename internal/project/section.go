package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// readSection returns the options of section with their literal text.
// Option names are lowercased like viper keys. YAML and JSON are read from
// the source so numbers such as 3.10 or 007 keep their spelling; other
// formats go through viper and reject decimal numbers, whose spelling is
// lost on decoding.
func readSection(path string, v *viper.Viper, section string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading project file %s: %w", path, err)
		}
		return yamlSection(data, section)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading project file %s: %w", path, err)
		}
		return jsonSection(data, section)
	default:
		return typedSection(v.GetStringMap(section))
	}
}

func yamlSection(data []byte, section string) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, nil
	}

	var options *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if strings.EqualFold(root.Content[i].Value, section) {
			options = resolveAlias(root.Content[i+1])
		}
	}
	if options == nil || options.Tag == "!!null" {
		return nil, nil
	}
	if options.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("section %q must be a mapping", section)
	}

	out := make(map[string]string, len(options.Content)/2)
	for i := 0; i+1 < len(options.Content); i += 2 {
		name := strings.ToLower(options.Content[i].Value)
		value := resolveAlias(options.Content[i+1])
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("option %s.%s must be a single value", section, name)
		}
		if value.Tag == "!!null" {
			out[name] = ""
			continue
		}
		out[name] = value.Value
	}
	return out, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func jsonSection(data []byte, section string) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}

	var raw any
	for key, value := range doc {
		if strings.EqualFold(key, section) {
			raw = value
		}
	}
	if raw == nil {
		return nil, nil
	}
	options, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("section %q must be an object", section)
	}

	out := make(map[string]string, len(options))
	for name, value := range options {
		name = strings.ToLower(name)
		switch v := value.(type) {
		case nil:
			out[name] = ""
		case string:
			out[name] = v
		case json.Number:
			out[name] = v.String()
		case bool:
			out[name] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("option %s.%s must be a single value", section, name)
		}
	}
	return out, nil
}

func typedSection(options map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(options))
	for name, value := range options {
		switch v := value.(type) {
		case nil:
			out[name] = ""
		case string:
			out[name] = v
		case float32, float64:
			return nil, fmt.Errorf("option %s: write decimal numbers as quoted strings", name)
		case map[string]any, []any:
			return nil, fmt.Errorf("option %s must be a single value", name)
		default:
			out[name] = fmt.Sprint(v)
		}
	}
	return out, nil
}
