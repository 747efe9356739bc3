package rank

import (
	"fmt"
	"strings"
	"testing"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/types"
)

func testRanker(t *testing.T, mutate func(*config.RankingConfig)) *Ranker {
	t.Helper()
	cfg := config.DefaultConfig().Ranking
	if mutate != nil {
		mutate(&cfg)
	}
	scorer := NewScorer(cfg, foodContractor(t), "Prepare a vegetarian buffet-style dinner menu")
	return NewRanker(cfg, scorer)
}

func TestRanker_StrictTotalOrder(t *testing.T) {
	r := testRanker(t, nil)

	sections := make([]types.Section, 0, 12)
	for i := 0; i < 12; i++ {
		sections = append(sections, types.Section{
			Document: fmt.Sprintf("doc%d.pdf", i%3+1),
			Title:    fmt.Sprintf("Section %d", i),
			Page:     i + 1,
			Text:     strings.Repeat("recipe menu ", i+1),
		})
	}

	ranked := r.Rank([]string{"doc1.pdf", "doc2.pdf", "doc3.pdf"}, sections)
	if len(ranked) != 12 {
		t.Fatalf("expected 12 ranked sections, got %d", len(ranked))
	}
	for i, sec := range ranked {
		if sec.Rank != i+1 {
			t.Errorf("rank at index %d = %d, want contiguous from 1", i, sec.Rank)
		}
		if i > 0 && ranked[i-1].Importance < sec.Importance {
			t.Errorf("importance not descending at index %d: %v < %v", i, ranked[i-1].Importance, sec.Importance)
		}
	}
}

func TestRanker_TieBreakByDocumentOrder(t *testing.T) {
	r := testRanker(t, nil)

	// Identical text everywhere: every importance ties, so document input
	// order and then occurrence order must decide.
	docOrder := []string{"b.pdf", "a.pdf"}
	sections := []types.Section{
		{Document: "a.pdf", Title: "first in a", Text: "recipe menu"},
		{Document: "b.pdf", Title: "first in b", Text: "recipe menu"},
		{Document: "a.pdf", Title: "second in a", Text: "recipe menu"},
	}

	ranked := r.Rank(docOrder, sections)
	want := []string{"first in b", "first in a", "second in a"}
	for i, title := range want {
		if ranked[i].Title != title {
			t.Errorf("rank %d = %q, want %q", i+1, ranked[i].Title, title)
		}
	}
}

func TestRanker_SkipsEmptySections(t *testing.T) {
	r := testRanker(t, nil)
	ranked := r.Rank([]string{"a.pdf"}, []types.Section{
		{Document: "a.pdf", Title: "empty", Text: "   "},
		{Document: "a.pdf", Title: "real", Text: "recipe menu"},
	})
	if len(ranked) != 1 || ranked[0].Title != "real" {
		t.Errorf("expected only the non-empty section, got %+v", ranked)
	}
}

func TestRanker_DoesNotMutateInput(t *testing.T) {
	r := testRanker(t, nil)
	sections := []types.Section{
		{Document: "a.pdf", Title: "one", Text: "recipe menu"},
	}
	snapshot := sections[0]
	r.Rank([]string{"a.pdf"}, sections)
	if sections[0] != snapshot {
		t.Errorf("Rank mutated input section: %+v", sections[0])
	}
}

func TestRanker_ReportTopN(t *testing.T) {
	r := testRanker(t, func(cfg *config.RankingConfig) {
		cfg.TopSections = 5
		cfg.TopSubsections = 7
	})

	sections := make([]types.Section, 0, 12)
	for i := 0; i < 12; i++ {
		sections = append(sections, types.Section{
			Document: "doc1.pdf",
			Title:    fmt.Sprintf("Section %d", i),
			Page:     i + 1,
			Text:     strings.Repeat("vegetarian recipe menu ", i+1),
		})
	}

	meta := types.ReportMetadata{
		InputDocuments: []string{"doc1.pdf"},
		Persona:        "Food Contractor",
		JobToBeDone:    "Prepare a vegetarian buffet-style dinner menu",
	}
	report := r.Report(meta, []string{"doc1.pdf"}, sections)

	if len(report.ExtractedSections) != 5 {
		t.Fatalf("expected exactly 5 extracted sections, got %d", len(report.ExtractedSections))
	}
	for i, sec := range report.ExtractedSections {
		if sec.ImportanceRank != i+1 {
			t.Errorf("importance_rank at %d = %d, want %d", i, sec.ImportanceRank, i+1)
		}
	}
	if len(report.SubsectionAnalysis) != 7 {
		t.Errorf("expected 7 subsection entries, got %d", len(report.SubsectionAnalysis))
	}
	for _, sub := range report.SubsectionAnalysis {
		if sub.RefinedText == "" {
			t.Error("subsection entry with empty refined text")
		}
	}
}
