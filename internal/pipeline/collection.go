package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/extract"
	"github.com/docsieve/docsieve/internal/persona"
	"github.com/docsieve/docsieve/internal/rank"
	"github.com/docsieve/docsieve/internal/types"
)

// CollectionRequest describes one collection run.
type CollectionRequest struct {
	Documents []string // PDF paths, in collection input order
	Persona   string   // Must match a configured persona profile
	Task      string   // Free-text job-to-be-done description
}

// CollectionResult pairs the final report with the per-document outcomes,
// including isolated failures.
type CollectionResult struct {
	RunID     string
	Report    types.CollectionReport
	Documents []types.DocumentResult
}

// Runner executes document and collection pipelines.
type Runner struct {
	source   extract.Source
	cfg      *config.Config
	personas *persona.Registry
	docs     *DocumentPipeline
	logger   *slog.Logger
}

// NewRunner creates a pipeline runner. A nil source defaults to the
// pdfcpu-backed PDF source.
func NewRunner(cfg *config.Config, source extract.Source, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if source == nil {
		source = extract.NewPDFSource(logger)
	}
	return &Runner{
		source:   source,
		cfg:      cfg,
		personas: persona.NewRegistry(cfg.Personas),
		docs:     NewDocumentPipeline(cfg.Heading, logger),
		logger:   logger,
	}
}

// ProcessDocument extracts and analyzes a single document. Extraction
// failure yields a StatusFailed result, never an error: per-document
// failures are contained so sibling documents keep processing.
func (r *Runner) ProcessDocument(ctx context.Context, path string) types.DocumentResult {
	doc := filepath.Base(path)

	runs, err := r.source.Runs(ctx, path)
	if err != nil {
		r.logger.Warn("document extraction failed", "document", doc, "error", err)
		return types.DocumentResult{
			Document: doc,
			Status:   types.StatusFailed,
			Reasons:  []string{err.Error()},
			Outline:  types.Outline{Entries: []types.OutlineEntry{}},
			Sections: []types.Section{},
		}
	}

	return r.docs.Process(doc, runs)
}

// RunCollection processes every document in the request concurrently and
// ranks the combined sections. Only configuration-level errors (unknown
// persona) propagate; individual document failures are recorded in the
// result and excluded from ranking.
func (r *Runner) RunCollection(ctx context.Context, req CollectionRequest) (*CollectionResult, error) {
	profile, err := r.personas.Lookup(req.Persona)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log := r.logger.With("run_id", runID)
	log.Info("starting collection run",
		"documents", len(req.Documents), "persona", req.Persona)

	results := r.fanOut(ctx, req.Documents)

	docNames := make([]string, len(req.Documents))
	sections := make([]types.Section, 0)
	failed := 0
	for i, res := range results {
		docNames[i] = res.Document
		if res.Status == types.StatusFailed {
			failed++
			continue
		}
		sections = append(sections, res.Sections...)
	}
	if failed > 0 {
		log.Warn("collection completed with failed documents", "failed", failed)
	}

	scorer := rank.NewScorer(r.cfg.Ranking, profile, req.Task)
	ranker := rank.NewRanker(r.cfg.Ranking, scorer)

	meta := types.ReportMetadata{
		InputDocuments:      docNames,
		Persona:             req.Persona,
		JobToBeDone:         req.Task,
		ProcessingTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	report := ranker.Report(meta, docNames, sections)

	log.Info("collection run complete",
		"sections", len(sections),
		"extracted", len(report.ExtractedSections),
		"subsections", len(report.SubsectionAnalysis))

	return &CollectionResult{
		RunID:     runID,
		Report:    report,
		Documents: results,
	}, nil
}

// fanOut processes documents concurrently with a bounded semaphore. Each
// worker produces its own DocumentResult; results land at their input
// index so collection order is preserved for the ranking tie-break.
func (r *Runner) fanOut(ctx context.Context, paths []string) []types.DocumentResult {
	maxWorkers := r.cfg.Pipeline.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	results := make([]types.DocumentResult, len(paths))
	sem := make(chan struct{}, maxWorkers)
	done := make(chan int, len(paths))

	for i, path := range paths {
		sem <- struct{}{} // acquire
		go func(idx int, p string) {
			defer func() { <-sem }() // release
			results[idx] = r.ProcessDocument(ctx, p)
			done <- idx
		}(i, path)
	}

	for range paths {
		<-done
	}
	return results
}

// DescribeFailure renders a short diagnostic for a failed document result.
func DescribeFailure(res types.DocumentResult) string {
	if len(res.Reasons) == 0 {
		return fmt.Sprintf("%s: failed", res.Document)
	}
	return fmt.Sprintf("%s: %s", res.Document, res.Reasons[0])
}
