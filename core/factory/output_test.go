package factory

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rail-service/postman-gen/core/ir"
)

func TestSaveWritesEncodedDocument(t *testing.T) {
	cf := NewCollectionFactory()
	cf.AddFolder("🏥 Health", "Health endpoints", []ir.Endpoint{
		{Method: "GET", Path: "/health", Handler: "HealthHandler", AuthRequired: true},
	})
	collection := cf.Build(nil)

	path := filepath.Join(t.TempDir(), "collection.json")
	if err := Save(collection, path, FormatJSON); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	expected, err := Encode(collection, FormatJSON)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.Equal(written, expected) {
		t.Fatalf("saved bytes differ from encoded bytes")
	}
}

func TestSaveRejectsUnknownFormat(t *testing.T) {
	collection := NewCollectionFactory().Build(nil)
	if err := Save(collection, filepath.Join(t.TempDir(), "out.bin"), "xml"); err == nil {
		t.Fatalf("expected an error for an unsupported format")
	}
}
