package collection

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const validInput = `{
  "documents": [
    {"filename": "menu1.pdf", "title": "Dinner Ideas"},
    {"filename": "menu2.pdf"}
  ],
  "persona": {"role": "Food Contractor"},
  "job_to_be_done": {"task": "Prepare a vegetarian buffet-style dinner menu"}
}`

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"valid", validInput, false},
		{"not json", "{nope", true},
		{"missing documents", `{"persona":{"role":"x"},"job_to_be_done":{"task":"y"}}`, true},
		{"empty documents", `{"documents":[],"persona":{"role":"x"},"job_to_be_done":{"task":"y"}}`, true},
		{"document without filename", `{"documents":[{"title":"t"}],"persona":{"role":"x"},"job_to_be_done":{"task":"y"}}`, true},
		{"missing persona role", `{"documents":[{"filename":"a.pdf"}],"persona":{},"job_to_be_done":{"task":"y"}}`, true},
		{"missing task", `{"documents":[{"filename":"a.pdf"}],"persona":{"role":"x"},"job_to_be_done":{}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, InputFileName)
	if err := os.WriteFile(path, []byte(validInput), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadInput(path)
	if err != nil {
		t.Fatalf("LoadInput() error = %v", err)
	}
	if spec.Persona.Role != "Food Contractor" {
		t.Errorf("role = %q", spec.Persona.Role)
	}
	if spec.JobToBeDone.Task != "Prepare a vegetarian buffet-style dinner menu" {
		t.Errorf("task = %q", spec.JobToBeDone.Task)
	}
	if len(spec.Documents) != 2 || spec.Documents[0].Filename != "menu1.pdf" {
		t.Errorf("documents = %+v", spec.Documents)
	}

	want := []string{
		filepath.Join(dir, PDFDirName, "menu1.pdf"),
		filepath.Join(dir, PDFDirName, "menu2.pdf"),
	}
	if got := spec.DocumentPaths(dir); !reflect.DeepEqual(got, want) {
		t.Errorf("DocumentPaths() = %v, want %v", got, want)
	}
}

func TestLoadInput_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, InputFileName)
	if err := os.WriteFile(path, []byte(`{"documents":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInput(path); err == nil {
		t.Error("expected a validation error for an empty document list")
	}
}

func TestDiscover(t *testing.T) {
	base := t.TempDir()

	mk := func(name string, withInput bool) {
		t.Helper()
		dir := filepath.Join(base, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if withInput {
			if err := os.WriteFile(filepath.Join(dir, InputFileName), []byte(validInput), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	mk("Collection 2", true)
	mk("Collection 1", true)
	mk("Collection 3", false) // no input.json, skipped
	mk("notes", true)         // wrong prefix, skipped
	if err := os.WriteFile(filepath.Join(base, "Collection 4"), nil, 0o644); err != nil {
		t.Fatal(err) // plain file, skipped
	}

	dirs, err := Discover(base)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{
		filepath.Join(base, "Collection 1"),
		filepath.Join(base, "Collection 2"),
	}
	if !reflect.DeepEqual(dirs, want) {
		t.Errorf("Discover() = %v, want %v", dirs, want)
	}
}
