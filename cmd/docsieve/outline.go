package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsieve/docsieve/internal/pipeline"
	"github.com/docsieve/docsieve/internal/render"
	"github.com/docsieve/docsieve/internal/types"
)

var (
	outlineInputDir  string
	outlineOutputDir string
)

var outlineCmd = &cobra.Command{
	Use:   "outline [pdf...]",
	Short: "Extract document outlines from PDFs",
	Long: `Extract a hierarchical outline (title plus H1-H3 headings) from each
PDF and write it as JSON.

With --input-dir, every PDF in the directory is processed. With --output-dir,
each document's outline is written as <stem>.json; otherwise a single
document's outline is printed to stdout.

Examples:
  docsieve outline report.pdf
  docsieve outline --input-dir ./pdfs --output-dir ./outlines`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		runner := pipeline.NewRunner(cm.Get(), nil, logger)

		paths := args
		if outlineInputDir != "" {
			found, err := findPDFs(outlineInputDir)
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no PDFs given: pass paths or --input-dir")
		}

		if outlineOutputDir == "" && len(paths) == 1 {
			res := runner.ProcessDocument(ctx, paths[0])
			if res.Status == types.StatusFailed {
				return fmt.Errorf("extraction failed: %s", pipeline.DescribeFailure(res))
			}
			return render.Output(res.Outline)
		}

		if outlineOutputDir == "" {
			return fmt.Errorf("--output-dir is required for multiple PDFs")
		}
		if err := os.MkdirAll(outlineOutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		failed := 0
		for _, path := range paths {
			res := runner.ProcessDocument(ctx, path)
			if res.Status == types.StatusFailed {
				logger.Warn("document failed", "document", res.Document, "reasons", res.Reasons)
				failed++
			}
			// Failed documents still get an empty outline file, so batch
			// consumers see one output per input.
			outPath := filepath.Join(outlineOutputDir, stem(path)+".json")
			if err := render.WriteJSONFile(outPath, res.Outline); err != nil {
				return err
			}
			logger.Info("outline written",
				"document", res.Document,
				"title", res.Outline.Title,
				"headings", len(res.Outline.Entries))
		}

		logger.Info("outline extraction complete", "documents", len(paths), "failed", failed)
		return nil
	},
}

func init() {
	outlineCmd.Flags().StringVar(&outlineInputDir, "input-dir", "", "directory of PDFs to process")
	outlineCmd.Flags().StringVar(&outlineOutputDir, "output-dir", "", "directory for outline JSON files")
	rootCmd.AddCommand(outlineCmd)
}

// findPDFs lists the PDFs in a directory, sorted by name.
func findPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// stem strips the directory and extension from a path.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
