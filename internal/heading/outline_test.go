package heading

import (
	"reflect"
	"testing"

	"github.com/docsieve/docsieve/internal/types"
)

func cand(text string, page int, level types.Level, confidence, top float64) types.HeadingCandidate {
	return types.HeadingCandidate{
		Run:        types.TextRun{Text: text, Page: page, TopOffset: top},
		Level:      level,
		Confidence: confidence,
		TopOffset:  top,
	}
}

func TestBuildOutline_Empty(t *testing.T) {
	outline := BuildOutline(nil)
	if outline.Title != "" {
		t.Errorf("expected empty title, got %q", outline.Title)
	}
	if len(outline.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(outline.Entries))
	}
}

func TestBuildOutline_RejectedOnly(t *testing.T) {
	outline := BuildOutline([]types.HeadingCandidate{
		cand("body text", 1, types.LevelNone, 0.1, 0.5),
		cand("more body", 2, types.LevelNone, 0.2, 0.3),
	})
	if outline.Title != "" || len(outline.Entries) != 0 {
		t.Errorf("rejected candidates leaked into outline: %+v", outline)
	}
}

func TestBuildOutline_ReadingOrder(t *testing.T) {
	// Page 2's entries arrive before page 1's, and page 1's are vertically
	// swapped; the outline must still come out in (page, position) order.
	outline := BuildOutline([]types.HeadingCandidate{
		cand("Methods", 2, types.LevelH2, 0.6, 0.4),
		cand("Background", 1, types.LevelH2, 0.6, 0.5),
		cand("Overview", 1, types.LevelH1, 0.8, 0.1),
	})

	got := make([]string, len(outline.Entries))
	for i, e := range outline.Entries {
		got[i] = e.Text
	}
	want := []string{"Overview", "Background", "Methods"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entry order = %v, want %v", got, want)
	}
}

func TestBuildOutline_TitleSelection(t *testing.T) {
	t.Run("best page-1 H1 wins", func(t *testing.T) {
		outline := BuildOutline([]types.HeadingCandidate{
			cand("Lesser Heading", 1, types.LevelH1, 0.75, 0.2),
			cand("Annual Report", 1, types.LevelH1, 0.95, 0.05),
			cand("Later Chapter", 2, types.LevelH1, 1.0, 0.1),
		})
		if outline.Title != "Annual Report" {
			t.Errorf("title = %q, want Annual Report", outline.Title)
		}
	})

	t.Run("no page-1 H1 means empty title", func(t *testing.T) {
		outline := BuildOutline([]types.HeadingCandidate{
			cand("Subheading", 1, types.LevelH2, 0.6, 0.2),
			cand("Chapter Two", 2, types.LevelH1, 0.9, 0.1),
		})
		if outline.Title != "" {
			t.Errorf("title = %q, want empty", outline.Title)
		}
	})

	t.Run("titled entry stays in outline", func(t *testing.T) {
		outline := BuildOutline([]types.HeadingCandidate{
			cand("Annual Report", 1, types.LevelH1, 0.9, 0.05),
		})
		if len(outline.Entries) != 1 || outline.Entries[0].Text != "Annual Report" {
			t.Errorf("expected titled entry preserved, got %+v", outline.Entries)
		}
	})
}

func TestBuildOutline_Idempotent(t *testing.T) {
	cands := []types.HeadingCandidate{
		cand("Overview", 1, types.LevelH1, 0.8, 0.1),
		cand("Details", 1, types.LevelH3, 0.35, 0.6),
		cand("Methods", 2, types.LevelH2, 0.6, 0.2),
	}
	first := BuildOutline(cands)
	second := BuildOutline(cands)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("outline builder not idempotent:\n%+v\n%+v", first, second)
	}
}
