package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apitools/endpointindex/internal/errors"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "discovery.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeDoc(t, `{
		"kind": "discovery#restDescription",
		"name": "androidpublisher",
		"version": "v3",
		"title": "Google Play Android Developer API",
		"baseUrl": "https://androidpublisher.googleapis.com/",
		"resources": {
			"edits": {
				"methods": {
					"get": {"httpMethod": "GET", "path": "applications/{packageName}/edits/{editId}"}
				},
				"resources": {
					"tracks": {
						"methods": {
							"list": {"httpMethod": "GET", "path": "applications/{packageName}/edits/{editId}/tracks"}
						}
					}
				}
			}
		}
	}`)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if doc.Name != "androidpublisher" {
		t.Errorf("Name = %q, want androidpublisher", doc.Name)
	}
	if doc.Version != "v3" {
		t.Errorf("Version = %q, want v3", doc.Version)
	}

	edits := doc.Resources["edits"]
	if edits == nil {
		t.Fatal("resources.edits missing")
	}
	if edits.Methods["get"].HTTPMethod != "GET" {
		t.Errorf("edits.get httpMethod = %q, want GET", edits.Methods["get"].HTTPMethod)
	}
	if edits.Resources["tracks"] == nil {
		t.Error("nested resource tracks missing")
	}
}

func TestLoad_MissingResourcesField(t *testing.T) {
	path := writeDoc(t, `{"name": "empty-api", "version": "v1"}`)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Resources != nil {
		t.Errorf("Resources = %+v, want nil", doc.Resources)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Load() should fail for missing file")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("error type = %v, want not_found", errors.GetErrorType(err))
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated object", `{"resources": {`},
		{"not json", "httpMethod path name"},
		{"wrong root type", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDoc(t, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail for invalid JSON")
			}
			if errors.GetErrorType(err) != errors.Parse {
				t.Errorf("error type = %v, want parse", errors.GetErrorType(err))
			}
		})
	}
}
