// Package pipeline wires the analysis stages together: extraction feeds
// feature derivation and heading classification per document, and a
// collection run fans out over documents before the ranking stage.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/features"
	"github.com/docsieve/docsieve/internal/heading"
	"github.com/docsieve/docsieve/internal/types"
)

// DocumentPipeline turns one document's raw runs into an outline and a
// section list. Stateless apart from configuration; safe for concurrent
// use by collection workers.
type DocumentPipeline struct {
	classifier *heading.Classifier
	logger     *slog.Logger
}

// NewDocumentPipeline creates a per-document pipeline.
func NewDocumentPipeline(cfg config.HeadingConfig, logger *slog.Logger) *DocumentPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentPipeline{
		classifier: heading.NewClassifier(cfg),
		logger:     logger.With("component", "pipeline"),
	}
}

// Process runs feature extraction, classification, outline assembly, and
// section segmentation for one document. An empty run list is a valid
// degenerate case: the result is an empty outline and no sections, with
// StatusOK. Malformed runs degrade the result instead of failing it.
func (p *DocumentPipeline) Process(doc string, runs []types.TextRun) types.DocumentResult {
	start := time.Now()

	result := types.DocumentResult{
		Document: doc,
		Status:   types.StatusOK,
		Outline:  types.Outline{Entries: []types.OutlineEntry{}},
		Sections: []types.Section{},
	}

	if len(runs) == 0 {
		p.logger.Debug("document yielded no runs", "document", doc)
		return result
	}

	df := features.Extract(runs)

	degraded := 0
	for _, rf := range df.Runs {
		if rf.Degraded {
			degraded++
		}
	}
	if degraded > 0 {
		result.Status = types.StatusDegraded
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("%d of %d runs missing attributes, conservative defaults assumed", degraded, len(runs)))
	}

	cands := p.classifier.ClassifyAll(runs, df)
	result.Outline = heading.BuildOutline(cands)
	result.Sections = segmentSections(doc, runs, cands)

	p.logger.Debug("document processed",
		"document", doc,
		"runs", len(runs),
		"headings", len(result.Outline.Entries),
		"sections", len(result.Sections),
		"duration", time.Since(start))

	return result
}
