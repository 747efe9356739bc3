// Package collection loads and validates collection run definitions: a
// directory holding an input.json (documents, persona, job to be done) and
// a PDFs/ subdirectory with the documents themselves.
package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// InputFileName is the collection definition file.
	InputFileName = "input.json"
	// OutputFileName is where the collection report is written.
	OutputFileName = "output.json"
	// PDFDirName is the subdirectory holding the collection's documents.
	PDFDirName = "PDFs"
)

// DocumentRef names one document inside a collection.
type DocumentRef struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
}

// InputSpec is the parsed collection definition.
type InputSpec struct {
	Documents []DocumentRef `json:"documents"`
	Persona   struct {
		Role string `json:"role"`
	} `json:"persona"`
	JobToBeDone struct {
		Task string `json:"task"`
	} `json:"job_to_be_done"`
}

// LoadInput reads and validates a collection's input.json. The raw JSON is
// checked against the embedded schema before decoding, so malformed
// definitions fail with a pointed validation error instead of a zero-value
// struct downstream.
func LoadInput(path string) (*InputSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection input: %w", err)
	}

	if err := ValidateInput(data); err != nil {
		return nil, fmt.Errorf("invalid collection input %s: %w", path, err)
	}

	var spec InputSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse collection input: %w", err)
	}
	return &spec, nil
}

// DocumentPaths resolves the spec's document filenames against the
// collection's PDFs directory, preserving input order.
func (s *InputSpec) DocumentPaths(collectionDir string) []string {
	paths := make([]string, len(s.Documents))
	for i, doc := range s.Documents {
		paths[i] = filepath.Join(collectionDir, PDFDirName, doc.Filename)
	}
	return paths
}

// Discover returns the collection directories under base: every directory
// whose name starts with "Collection" and that contains an input file.
// Results are sorted for deterministic processing order.
func Discover(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("failed to read collections directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "Collection") {
			continue
		}
		dir := filepath.Join(base, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, InputFileName)); err != nil {
			continue
		}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}
