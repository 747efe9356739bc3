package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/render"
	"github.com/docsieve/docsieve/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "docsieve",
	Short: "PDF outline extraction and persona-driven section ranking",
	Long: `Docsieve analyzes collections of PDF documents: it infers each
document's hierarchical outline (title plus nested headings) from raw page
content, and ranks document sections by relevance to a stated persona and
task, producing a structured summary report.

The pipeline includes:
  - Feature-based heading classification with confidence scores
  - Outline assembly in reading order with title selection
  - Persona/task keyword relevance scoring
  - Collection-wide importance ranking with refined excerpts`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docsieve/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "docsieve home directory (default: ~/.docsieve)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		render.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadConfig creates the config manager from --config.
func loadConfig() (*config.Manager, error) {
	return config.NewManager(cfgFile)
}
