package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"github.com/rail-service/postman-gen/core/ir"
)

// OpenAPIExtractor recovers route facts from an OpenAPI 3.x document instead
// of scanning route source. Handler identity comes from operationId, the
// provenance group from the first tag. It feeds the same grouping and
// assembly pipeline as the pattern scan.
type OpenAPIExtractor struct {
	specPath string
}

func NewOpenAPIExtractor(specPath string) *OpenAPIExtractor {
	return &OpenAPIExtractor{specPath: specPath}
}

func (o *OpenAPIExtractor) Source() string {
	return o.specPath
}

func (o *OpenAPIExtractor) Extract() ([]ir.Endpoint, ir.Stats, error) {
	var stats ir.Stats

	spec, err := os.ReadFile(o.specPath)
	if err != nil {
		return nil, stats, ExtractError{Source: o.specPath, Message: "read spec: " + err.Error()}
	}

	cfg := datamodel.NewDocumentConfiguration()
	cfg.BasePath = filepath.Dir(o.specPath)
	cfg.SpecFilePath = filepath.Base(o.specPath)
	cfg.AllowFileReferences = true

	document, err := libopenapi.NewDocumentWithConfiguration(spec, cfg)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to create document: %w", err)
	}

	model, err := document.BuildV3Model()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to build v3 model: %w", err)
	}

	stats.FilesScanned = 1

	doc := model.Model
	if doc.Paths == nil {
		return nil, stats, nil
	}

	var endpoints []ir.Endpoint
	for path, pathItem := range doc.Paths.PathItems.FromOldest() {
		if pathItem == nil {
			continue
		}
		for _, method := range ir.Methods() {
			operation := operationFor(pathItem, method)
			if operation == nil {
				continue
			}
			endpoints = append(endpoints, ir.Endpoint{
				Method:       method,
				Path:         path,
				Handler:      operation.OperationId,
				AuthRequired: operationRequiresAuth(operation),
				Group:        firstTag(operation),
			})
		}
	}

	stats.Extracted = len(endpoints)
	return endpoints, stats, nil
}

func operationFor(pathItem *v3.PathItem, method string) *v3.Operation {
	switch method {
	case ir.MethodGet:
		return pathItem.Get
	case ir.MethodPost:
		return pathItem.Post
	case ir.MethodPut:
		return pathItem.Put
	case ir.MethodPatch:
		return pathItem.Patch
	case ir.MethodDelete:
		return pathItem.Delete
	}
	return nil
}

// operationRequiresAuth treats only an explicitly empty security array
// (security: []) as an auth opt-out, mirroring the OpenAPI convention. As with
// the pattern scan, the result is a hint for the collection, not ground truth.
func operationRequiresAuth(operation *v3.Operation) bool {
	if operation.Security != nil && len(operation.Security) == 0 {
		return false
	}
	return true
}

func firstTag(operation *v3.Operation) string {
	if len(operation.Tags) == 0 {
		return ""
	}
	return operation.Tags[0]
}
