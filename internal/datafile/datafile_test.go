package datafile

import (
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

func TestReadMissingFileIsNotAnError(t *testing.T) {
	var s sample
	found, err := Read(filepath.Join(t.TempDir(), "absent.json"), &s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for missing file")
	}
}

func TestReadJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "a.json")
	yamlPath := filepath.Join(dir, "a.yml")
	if err := os.WriteFile(jsonPath, []byte(`{"name":"j","items":["x"]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("name: y\nitems:\n  - x\n  - z\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var js, ys sample
	if _, err := Read(jsonPath, &js); err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, err := Read(yamlPath, &ys); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if js.Name != "j" || len(js.Items) != 1 {
		t.Fatalf("unexpected json decode %+v", js)
	}
	if ys.Name != "y" || len(ys.Items) != 2 {
		t.Fatalf("unexpected yaml decode %+v", ys)
	}
}

func TestReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"name":`), 0o600); err != nil {
		t.Fatal(err)
	}
	var s sample
	found, err := Read(path, &s)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !found {
		t.Fatal("expected found=true for a present but malformed file")
	}
}
