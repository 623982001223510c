package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a manifest serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat picks the format from the URL path extension, then the
// Content-Type header. YAML is the default.
func DetectFormat(urlPath, contentType string) Format {
	switch strings.ToLower(path.Ext(urlPath)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	}

	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			switch {
			case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
				return FormatJSON
			case mediaType == "application/toml":
				return FormatTOML
			}
		}
	}
	return FormatYAML
}

// Parse decodes and validates a manifest document.
// Returns ErrMalformed wrapping the parse or schema error.
func Parse(data []byte, format Format) (*Manifest, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var m Manifest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &m,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if m.Requirements.Pip == nil {
		m.Requirements.Pip = []string{}
	}
	if m.Runtime.Entry.Args == nil {
		m.Runtime.Entry.Args = []string{}
	}
	return &m, nil
}

// decode parses data into generic maps and slices.
func decode(data []byte, format Format) (any, error) {
	var doc any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		doc = m
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		doc = normalizeYAML(doc)
	}

	if _, ok := doc.(map[string]any); !ok {
		return nil, fmt.Errorf("document is not a mapping")
	}
	return doc, nil
}

// normalizeYAML converts map[any]any, which yaml.v3 produces for
// non-string keys, into map[string]any.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}
