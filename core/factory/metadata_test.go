package factory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMetadataJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoint_metadata.json")
	content := `{
		"LoginHandler": {
			"description": "Authenticate with email and password",
			"body": {"email": "user@example.com", "password": "hunter2"},
			"response": {"access_token": "token"}
		},
		"HealthHandler": {
			"description": "Liveness probe"
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write metadata: %v", err)
	}

	metadata, found, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected metadata file to be found")
	}
	if len(metadata) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(metadata))
	}

	login := metadata["LoginHandler"]
	if login.Description != "Authenticate with email and password" {
		t.Fatalf("unexpected description %q", login.Description)
	}
	if !strings.Contains(string(login.Body), "user@example.com") {
		t.Fatalf("expected raw body payload, got %s", login.Body)
	}
	if len(metadata["HealthHandler"].Body) != 0 {
		t.Fatalf("expected no body for HealthHandler")
	}
}

func TestLoadMetadataMissingFileDegrades(t *testing.T) {
	metadata, found, err := LoadMetadata(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("expected missing file to degrade, got %v", err)
	}
	if found {
		t.Fatalf("expected found=false for a missing file")
	}
	if metadata == nil || len(metadata) != 0 {
		t.Fatalf("expected empty table, got %#v", metadata)
	}
}

func TestLoadMetadataMalformedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoint_metadata.json")
	if err := os.WriteFile(path, []byte(`{"LoginHandler": `), 0o644); err != nil {
		t.Fatalf("failed to write metadata: %v", err)
	}

	_, found, err := LoadMetadata(path)
	if err == nil {
		t.Fatalf("expected an error for malformed metadata")
	}
	if !found {
		t.Fatalf("expected found=true for an existing malformed file")
	}
}

func TestLoadMetadataYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoint_metadata.yaml")
	content := `LoginHandler:
  description: Authenticate with email and password
  body:
    email: user@example.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write metadata: %v", err)
	}

	metadata, found, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected metadata file to be found")
	}
	login := metadata["LoginHandler"]
	if login.Description != "Authenticate with email and password" {
		t.Fatalf("unexpected description %q", login.Description)
	}
	if !strings.Contains(string(login.Body), "user@example.com") {
		t.Fatalf("expected converted body payload, got %s", login.Body)
	}
}
