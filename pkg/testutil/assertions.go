package testutil

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/folio/pkg/content"
)

// AssertJSONEqual compares two values after JSON round-tripping.
func AssertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}
	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}
	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// AssertValidSite fails when site would be rejected by the loader.
func AssertValidSite(t *testing.T, site *content.Site) {
	t.Helper()
	if err := site.Validate(); err != nil {
		t.Fatalf("fixture is invalid: %v", err)
	}
}

// MarshalYAML encodes site as a content file.
func MarshalYAML(t *testing.T, site *content.Site) []byte {
	t.Helper()
	data, err := yaml.Marshal(site)
	if err != nil {
		t.Fatalf("failed to marshal content: %v", err)
	}
	return data
}

// WriteContentFile writes site to dir/name and returns the path.
func WriteContentFile(t *testing.T, dir, name string, site *content.Site) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, MarshalYAML(t, site), 0o644); err != nil {
		t.Fatalf("failed to write content file: %v", err)
	}
	return path
}
