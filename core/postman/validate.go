package postman

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed collection_schema.json
var schemaJSON []byte

func compileCollectionSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("collection.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load collection schema: %w", err)
	}
	schema, err := compiler.Compile("collection.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile collection schema: %w", err)
	}
	return schema, nil
}

// Validate checks an encoded collection document against the v2.1.0 schema
// subset this package emits.
func Validate(data []byte) error {
	schema, err := compileCollectionSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode collection JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("collection does not satisfy schema: %w", err)
	}
	return nil
}
