package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/persona"
	"github.com/docsieve/docsieve/internal/types"
)

// fakeSource serves canned runs keyed by path, with per-path failures.
type fakeSource struct {
	runs map[string][]types.TextRun
	errs map[string]error
}

func (f *fakeSource) Runs(_ context.Context, path string) ([]types.TextRun, error) {
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	return f.runs[path], nil
}

func docRuns(heading, body string) []types.TextRun {
	return []types.TextRun{
		{Text: heading, Page: 1, FontSize: 19.2, Bold: true, TopOffset: 0.05},
		{Text: body, Page: 1, FontSize: 12, TopOffset: 0.3},
		{Text: "Filler paragraph keeping the baseline honest.", Page: 1, FontSize: 12, TopOffset: 0.5},
	}
}

func TestRunCollection_UnknownPersona(t *testing.T) {
	runner := NewRunner(config.DefaultConfig(), &fakeSource{}, nil)

	res, err := runner.RunCollection(context.Background(), CollectionRequest{
		Documents: []string{"a.pdf"},
		Persona:   "Astronaut",
		Task:      "anything",
	})
	if !errors.Is(err, persona.ErrUnknownPersona) {
		t.Fatalf("expected ErrUnknownPersona, got %v", err)
	}
	if res != nil {
		t.Errorf("expected nil result on persona error, got %+v", res)
	}
}

func TestRunCollection_FailedDocumentIsolated(t *testing.T) {
	src := &fakeSource{
		runs: map[string][]types.TextRun{
			"in/doc1.pdf": docRuns("1. MENU PLANNING", "Vegetarian buffet dinner menu with catering options."),
			"in/doc3.pdf": docRuns("2. RECIPES", "Vegetarian recipe collection for dinner service."),
		},
		errs: map[string]error{
			"in/doc2.pdf": errors.New("pdf: damaged xref table"),
		},
	}
	runner := NewRunner(config.DefaultConfig(), src, nil)

	res, err := runner.RunCollection(context.Background(), CollectionRequest{
		Documents: []string{"in/doc1.pdf", "in/doc2.pdf", "in/doc3.pdf"},
		Persona:   "Food Contractor",
		Task:      "Prepare a vegetarian buffet-style dinner menu",
	})
	if err != nil {
		t.Fatalf("RunCollection() error = %v, want nil despite a failed document", err)
	}
	if res.RunID == "" {
		t.Error("expected a non-empty run ID")
	}

	if len(res.Documents) != 3 {
		t.Fatalf("expected 3 document results, got %d", len(res.Documents))
	}
	if res.Documents[1].Status != types.StatusFailed {
		t.Errorf("doc2 status = %v, want failed", res.Documents[1].Status)
	}
	if res.Documents[0].Status != types.StatusOK || res.Documents[2].Status != types.StatusOK {
		t.Errorf("sibling documents should be ok: %v / %v",
			res.Documents[0].Status, res.Documents[2].Status)
	}

	wantDocs := []string{"doc1.pdf", "doc2.pdf", "doc3.pdf"}
	if !reflect.DeepEqual(res.Report.Metadata.InputDocuments, wantDocs) {
		t.Errorf("input_documents = %v, want %v (failed document still listed)",
			res.Report.Metadata.InputDocuments, wantDocs)
	}

	for _, sec := range res.Report.ExtractedSections {
		if sec.Document == "doc2.pdf" {
			t.Errorf("failed document leaked into extracted sections: %+v", sec)
		}
	}
	for _, sub := range res.Report.SubsectionAnalysis {
		if sub.Document == "doc2.pdf" {
			t.Errorf("failed document leaked into subsection analysis: %+v", sub)
		}
	}
	if len(res.Report.ExtractedSections) == 0 {
		t.Error("expected sections from the surviving documents")
	}
}

func TestRunCollection_ReportMetadata(t *testing.T) {
	src := &fakeSource{
		runs: map[string][]types.TextRun{
			"a.pdf": docRuns("1. OVERVIEW", "General travel planning notes for a group trip."),
		},
	}
	runner := NewRunner(config.DefaultConfig(), src, nil)

	res, err := runner.RunCollection(context.Background(), CollectionRequest{
		Documents: []string{"a.pdf"},
		Persona:   "Travel Planner",
		Task:      "Plan a trip of 4 days",
	})
	if err != nil {
		t.Fatalf("RunCollection() error = %v", err)
	}

	meta := res.Report.Metadata
	if meta.Persona != "Travel Planner" || meta.JobToBeDone != "Plan a trip of 4 days" {
		t.Errorf("metadata echo = %+v", meta)
	}
	if meta.ProcessingTimestamp == "" {
		t.Error("expected a processing timestamp")
	}
	if !strings.HasSuffix(meta.ProcessingTimestamp, "Z") {
		t.Errorf("timestamp %q not UTC RFC3339", meta.ProcessingTimestamp)
	}
}

func TestProcessDocument_ExtractionFailure(t *testing.T) {
	src := &fakeSource{errs: map[string]error{"bad.pdf": errors.New("not a pdf")}}
	runner := NewRunner(config.DefaultConfig(), src, nil)

	res := runner.ProcessDocument(context.Background(), "bad.pdf")
	if res.Status != types.StatusFailed {
		t.Fatalf("status = %v, want failed", res.Status)
	}
	if len(res.Reasons) != 1 || !strings.Contains(res.Reasons[0], "not a pdf") {
		t.Errorf("reasons = %v, want the extraction error", res.Reasons)
	}
	if got := DescribeFailure(res); got != "bad.pdf: not a pdf" {
		t.Errorf("DescribeFailure() = %q", got)
	}
}
