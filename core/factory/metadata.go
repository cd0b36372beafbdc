package factory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sigyaml "sigs.k8s.io/yaml"
)

// MetadataEntry enriches one handler: a human description plus example
// request and response payloads. Body and Response stay raw so author
// formatting and key order survive into the collection.
type MetadataEntry struct {
	Description string          `json:"description,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
	Response    json.RawMessage `json:"response,omitempty"`
}

// Metadata is the enrichment side-table keyed by handler identifier.
type Metadata map[string]MetadataEntry

// LoadMetadata reads the side-table from a JSON or YAML file, picked by
// extension. A missing file is not an error: callers get an empty table and
// found=false so they can warn. Malformed content is an error.
func LoadMetadata(path string) (meta Metadata, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to read metadata file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = sigyaml.YAMLToJSON(data)
		if err != nil {
			return nil, true, fmt.Errorf("failed to convert metadata YAML: %w", err)
		}
	}

	meta = Metadata{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, true, fmt.Errorf("failed to parse metadata file %s: %w", path, err)
	}
	return meta, true, nil
}
