package rank

import (
	"sort"
	"strings"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/types"
)

// Ranker aggregates scored sections across a collection and selects the
// top entries for the report. It never mutates the Sections it is given.
type Ranker struct {
	cfg    config.RankingConfig
	scorer *Scorer
}

// NewRanker creates a ranker using the given scorer.
func NewRanker(cfg config.RankingConfig, scorer *Scorer) *Ranker {
	return &Ranker{cfg: cfg, scorer: scorer}
}

// Rank scores every qualifying section and returns them in strict
// descending importance order with contiguous 1-based ranks. Ties break by
// (document order, first occurrence) so the total order is deterministic.
// docOrder is the collection's document list in input order; sections from
// unlisted documents sort after listed ones.
func (r *Ranker) Rank(docOrder []string, sections []types.Section) []types.ScoredSection {
	docIndex := make(map[string]int, len(docOrder))
	for i, doc := range docOrder {
		docIndex[doc] = i
	}
	orderOf := func(doc string) int {
		if i, ok := docIndex[doc]; ok {
			return i
		}
		return len(docOrder)
	}

	type entry struct {
		scored types.ScoredSection
		occur  int // position in the input slice, for tie-breaking
	}

	entries := make([]entry, 0, len(sections))
	for i, sec := range sections {
		if strings.TrimSpace(sec.Text) == "" {
			continue
		}
		importance, components := r.scorer.Score(sec)
		entries = append(entries, entry{
			scored: types.ScoredSection{
				Section:    sec,
				Importance: importance,
				Components: components,
			},
			occur: i,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.scored.Importance != b.scored.Importance {
			return a.scored.Importance > b.scored.Importance
		}
		ao, bo := orderOf(a.scored.Document), orderOf(b.scored.Document)
		if ao != bo {
			return ao < bo
		}
		return a.occur < b.occur
	})

	ranked := make([]types.ScoredSection, len(entries))
	for i, e := range entries {
		e.scored.Rank = i + 1
		ranked[i] = e.scored
	}
	return ranked
}

// Report ranks all sections and assembles the final collection report:
// the top-N sections as extracted_sections and the top-M refined excerpts
// as subsection_analysis.
func (r *Ranker) Report(meta types.ReportMetadata, docOrder []string, sections []types.Section) types.CollectionReport {
	ranked := r.Rank(docOrder, sections)

	report := types.CollectionReport{
		Metadata:           meta,
		ExtractedSections:  make([]types.ExtractedSection, 0, r.cfg.TopSections),
		SubsectionAnalysis: make([]types.SubsectionEntry, 0, r.cfg.TopSubsections),
	}

	for i, sec := range ranked {
		if i >= r.cfg.TopSections {
			break
		}
		report.ExtractedSections = append(report.ExtractedSections, types.ExtractedSection{
			Document:       sec.Document,
			SectionTitle:   sec.Title,
			ImportanceRank: sec.Rank,
			PageNumber:     sec.Page,
		})
	}

	for i, sec := range ranked {
		if i >= r.cfg.TopSubsections {
			break
		}
		refined := Refine(sec.Text, r.cfg.RefinedTextLimit)
		if refined == "" {
			continue
		}
		report.SubsectionAnalysis = append(report.SubsectionAnalysis, types.SubsectionEntry{
			Document:    sec.Document,
			RefinedText: refined,
			PageNumber:  sec.Page,
		})
	}

	return report
}
