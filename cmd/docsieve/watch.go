package main

import (
	"github.com/spf13/cobra"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/home"
	"github.com/docsieve/docsieve/internal/pipeline"
	"github.com/docsieve/docsieve/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory and extract outlines as PDFs arrive",
	Long: `Watch the home inbox directory ({home}/inbox) and run the outline
pipeline on each PDF dropped into it. Outline JSON lands in {home}/output.

Configuration changes are hot-reloaded while watching.

Examples:
  docsieve watch
  docsieve watch --home /srv/docsieve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		cm.WatchConfig()

		runner := pipeline.NewRunner(cm.Get(), nil, logger)
		w := watch.New(h.InboxPath(), h.OutputPath(), runner, logger)
		cm.OnChange(func(cfg *config.Config) {
			logger.Info("config reloaded")
			w.SetRunner(pipeline.NewRunner(cfg, nil, logger))
		})
		return w.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
