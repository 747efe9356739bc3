package heading

import (
	"sort"

	"github.com/docsieve/docsieve/internal/types"
)

// BuildOutline assembles accepted candidates into the final Outline. It is
// a pure aggregator: no level repair, no re-scoring. Entries are ordered by
// (page, vertical position) even when the source stream arrived out of
// geometric order for a page.
//
// Title selection is a separate step from the H1-H3 entries: the
// highest-confidence H1 on page 1 becomes the document title, ties broken
// by vertical position. A document with no page-1 H1 has an empty title;
// that is a valid outcome, never an error.
func BuildOutline(cands []types.HeadingCandidate) types.Outline {
	accepted := make([]types.HeadingCandidate, 0, len(cands))
	for _, cand := range cands {
		if cand.Level != types.LevelNone {
			accepted = append(accepted, cand)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].Run.Page != accepted[j].Run.Page {
			return accepted[i].Run.Page < accepted[j].Run.Page
		}
		return accepted[i].TopOffset < accepted[j].TopOffset
	})

	outline := types.Outline{
		Title:   selectTitle(accepted),
		Entries: make([]types.OutlineEntry, 0, len(accepted)),
	}
	for _, cand := range accepted {
		outline.Entries = append(outline.Entries, types.OutlineEntry{
			Level: cand.Level,
			Text:  cand.Run.Text,
			Page:  cand.Run.Page,
		})
	}

	return outline
}

// selectTitle picks the best page-1 H1. Input must already be sorted by
// (page, position) so equal-confidence ties resolve to the earliest run.
func selectTitle(sorted []types.HeadingCandidate) string {
	title := ""
	best := -1.0
	for _, cand := range sorted {
		if cand.Run.Page != 1 {
			break
		}
		if cand.Level == types.LevelH1 && cand.Confidence > best {
			best = cand.Confidence
			title = cand.Run.Text
		}
	}
	return title
}
