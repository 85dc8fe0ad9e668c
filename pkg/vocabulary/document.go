package vocabulary

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format of a vocabulary document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Parse decodes a vocabulary document into raw entries. The document is
// either a bare list or a map with a "words" list.
func Parse(data []byte, format Format) ([]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []any{}, nil
	}

	var root any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("failed to parse vocabulary json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to parse vocabulary yaml: %w", err)
		}
	}

	switch v := root.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return v, nil
	case map[string]any:
		words, ok := v["words"]
		if !ok || words == nil {
			return []any{}, nil
		}
		list, ok := words.([]any)
		if !ok {
			return nil, fmt.Errorf("vocabulary 'words' must be a list, got %T", words)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("vocabulary document must be a list or a map, got %T", root)
	}
}
