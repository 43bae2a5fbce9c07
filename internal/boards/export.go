package boards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kverlander/slate/internal/schema"
)

// Export writes one self-contained copy of the document to a user-chosen
// path outside the managed store. The format follows the extension: .yaml or
// .yml exports YAML, anything else exports the canonical JSON document.
func Export(doc *schema.BoardDocument, path string) error {
	data, err := schema.EncodeBoard(doc)
	if err != nil {
		return err
	}

	if isYAMLPath(path) {
		data, err = jsonToYAML(data)
		if err != nil {
			return fmt.Errorf("failed to convert board %s to YAML: %w", doc.ID, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export %s: %w", path, err)
	}
	return nil
}

// Import reads an exported document back into the in-memory model and stamps
// a fresh UpdatedAt. Registration into the index is left to the caller
// (typically by saving the document through the facade).
func Import(path string) (*schema.BoardDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import %s: %w", path, err)
	}

	if isYAMLPath(path) {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML import %s: %w", path, err)
		}
	}

	doc, err := schema.DecodeBoard(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode import %s: %w", path, err)
	}
	doc.UpdatedAt = time.Now().UTC()
	return doc, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// jsonToYAML re-expresses a JSON document as YAML. Going through an untyped
// value keeps the json struct tags authoritative for field names.
func jsonToYAML(data []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

// yamlToJSON re-expresses a YAML document as JSON so it can flow through the
// same tolerant decoder as native documents.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(v))
}

// normalizeYAML converts map[any]any values (as yaml.v3 can produce for
// non-string keys) into map[string]any for JSON marshaling.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAML(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}
