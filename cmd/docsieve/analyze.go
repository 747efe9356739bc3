package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsieve/docsieve/internal/collection"
	"github.com/docsieve/docsieve/internal/persona"
	"github.com/docsieve/docsieve/internal/pipeline"
	"github.com/docsieve/docsieve/internal/render"
	"github.com/docsieve/docsieve/internal/types"
)

var (
	analyzeBaseDir string
	analyzeStdout  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [collection-dir...]",
	Short: "Rank collection sections for a persona and task",
	Long: `Analyze one or more document collections. Each collection directory
holds an input.json naming its documents, persona, and job to be done, plus
a PDFs/ subdirectory. The ranked report is written to output.json in each
collection directory.

With --base, directories named Collection* under the base are discovered
and processed in order.

Examples:
  docsieve analyze ./Collection1
  docsieve analyze --base ./challenge
  docsieve analyze --stdout ./Collection1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		runner := pipeline.NewRunner(cm.Get(), nil, logger)

		dirs := args
		if analyzeBaseDir != "" {
			found, err := collection.Discover(analyzeBaseDir)
			if err != nil {
				return err
			}
			dirs = append(dirs, found...)
		}
		if len(dirs) == 0 {
			return fmt.Errorf("no collections given: pass directories or --base")
		}

		for _, dir := range dirs {
			if err := analyzeCollection(cmd, runner, dir); err != nil {
				// Unknown persona is a configuration error: the whole run
				// is wrong, not just this collection.
				if errors.Is(err, persona.ErrUnknownPersona) {
					return err
				}
				logger.Error("collection failed", "dir", dir, "error", err)
			}
		}
		return nil
	},
}

func analyzeCollection(cmd *cobra.Command, runner *pipeline.Runner, dir string) error {
	spec, err := collection.LoadInput(filepath.Join(dir, collection.InputFileName))
	if err != nil {
		return err
	}

	result, err := runner.RunCollection(cmd.Context(), pipeline.CollectionRequest{
		Documents: spec.DocumentPaths(dir),
		Persona:   spec.Persona.Role,
		Task:      spec.JobToBeDone.Task,
	})
	if err != nil {
		return err
	}

	for _, doc := range result.Documents {
		if doc.Status == types.StatusFailed {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", pipeline.DescribeFailure(doc))
		}
	}

	if analyzeStdout {
		return render.Output(result.Report)
	}

	outPath := filepath.Join(dir, collection.OutputFileName)
	if err := render.WriteJSONFile(outPath, result.Report); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d sections, %d subsections)\n",
		outPath, len(result.Report.ExtractedSections), len(result.Report.SubsectionAnalysis))
	return nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeBaseDir, "base", "", "directory containing Collection* subdirectories")
	analyzeCmd.Flags().BoolVar(&analyzeStdout, "stdout", false, "print the report instead of writing output.json")
	rootCmd.AddCommand(analyzeCmd)
}
