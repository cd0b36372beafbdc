package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	sigyaml "sigs.k8s.io/yaml"

	"github.com/rail-service/postman-gen/core/postman"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode serializes the collection in the given format. JSON output is UTF-8
// with two-space indentation and no HTML escaping, so glyphs and URLs come
// out literally.
func Encode(collection *postman.Collection, format string) ([]byte, error) {
	jsonBytes, err := encodeJSON(collection)
	if err != nil {
		return nil, err
	}

	switch format {
	case "", FormatJSON:
		return jsonBytes, nil
	case FormatYAML:
		yamlBytes, err := sigyaml.JSONToYAML(jsonBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to convert collection to YAML: %w", err)
		}
		return yamlBytes, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// Save encodes the collection and writes it to path.
func Save(collection *postman.Collection, path, format string) error {
	data, err := Encode(collection, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection file: %w", err)
	}
	return nil
}

func encodeJSON(collection *postman.Collection) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(collection); err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return buf.Bytes(), nil
}
