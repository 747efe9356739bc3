// Package extract adapts PDF files into ordered TextRun streams. It is the
// boundary to byte-level PDF decoding: everything past this package works
// on positioned text runs and makes no assumption about how the bytes were
// decoded.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docsieve/docsieve/internal/types"
)

// Source yields the ordered per-page text runs for one document.
type Source interface {
	Runs(ctx context.Context, path string) ([]types.TextRun, error)
}

// PDFSource extracts text runs from PDF files using pdfcpu.
type PDFSource struct {
	logger *slog.Logger
}

// NewPDFSource creates a PDF-backed run source.
func NewPDFSource(logger *slog.Logger) *PDFSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFSource{logger: logger.With("component", "extract")}
}

// Runs reads, validates, and walks every page's content stream, emitting
// text runs in page order. A page whose content stream cannot be read is
// skipped with a warning; the document fails only when pdfcpu rejects the
// file outright.
func (s *PDFSource) Runs(ctx context.Context, path string) ([]types.TextRun, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	dims, err := pdfCtx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	var runs []types.TextRun
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageHeight := 0.0
		if pageNr-1 < len(dims) {
			pageHeight = dims[pageNr-1].Height
		}

		pageRuns, err := s.pageRuns(pdfCtx, pageNr, pageHeight)
		if err != nil {
			s.logger.Warn("skipping unreadable page", "path", path, "page", pageNr, "error", err)
			continue
		}
		runs = append(runs, pageRuns...)
	}

	s.logger.Debug("extracted runs", "path", path, "pages", pdfCtx.PageCount, "runs", len(runs))
	return runs, nil
}

// pageRuns extracts one page's content stream and parses it into runs.
func (s *PDFSource) pageRuns(pdfCtx *model.Context, pageNr int, pageHeight float64) ([]types.TextRun, error) {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page content: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	return parseContentStream(r, pageNr, pageHeight)
}
