// Package watch monitors an inbox directory and runs the outline pipeline
// on PDFs as they arrive.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/docsieve/docsieve/internal/pipeline"
	"github.com/docsieve/docsieve/internal/render"
	"github.com/docsieve/docsieve/internal/types"
)

// Watcher processes PDFs dropped into an inbox directory, writing each
// document's outline JSON into the output directory.
type Watcher struct {
	inbox  string
	output string
	logger *slog.Logger

	mu     sync.RWMutex
	runner *pipeline.Runner

	// seen tracks files already processed this session, keyed by path and
	// modification time, so Write events after our own reads don't retrigger.
	seen map[string]time.Time
}

// New creates a watcher over the given inbox and output directories.
func New(inbox, output string, runner *pipeline.Runner, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		inbox:  inbox,
		output: output,
		runner: runner,
		logger: logger.With("component", "watch"),
		seen:   make(map[string]time.Time),
	}
}

// SetRunner swaps the pipeline runner. Used by config hot reload so
// documents dropped after a config change use the new thresholds.
func (w *Watcher) SetRunner(runner *pipeline.Runner) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.runner = runner
}

func (w *Watcher) getRunner() *pipeline.Runner {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.runner
}

// Run processes any PDFs already in the inbox, then blocks watching for
// new arrivals until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.inbox); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.inbox, err)
	}
	w.logger.Info("watching inbox", "dir", w.inbox)

	// Catch up on anything that arrived before the watch started.
	entries, err := os.ReadDir(w.inbox)
	if err != nil {
		return fmt.Errorf("failed to read inbox: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && isPDF(entry.Name()) {
			w.handle(ctx, filepath.Join(w.inbox, entry.Name()))
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isPDF(event.Name) {
				continue
			}
			w.handle(ctx, event.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// handle waits for the file to stop growing, then runs the document
// pipeline and writes the outline JSON. Failures are logged, never fatal:
// one bad drop must not stop the watcher.
func (w *Watcher) handle(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if last, ok := w.seen[path]; ok && !info.ModTime().After(last) {
		return
	}

	if err := w.waitStable(ctx, path); err != nil {
		w.logger.Warn("file never stabilized", "path", path, "error", err)
		return
	}

	res := w.getRunner().ProcessDocument(ctx, path)
	if info, err := os.Stat(path); err == nil {
		w.seen[path] = info.ModTime()
	}

	if res.Status == types.StatusFailed {
		w.logger.Warn("document failed", "document", res.Document, "reasons", res.Reasons)
		return
	}

	outPath := filepath.Join(w.output, stem(path)+".json")
	if err := render.WriteJSONFile(outPath, res.Outline); err != nil {
		w.logger.Error("failed to write outline", "path", outPath, "error", err)
		return
	}
	w.logger.Info("outline written",
		"document", res.Document,
		"title", res.Outline.Title,
		"headings", len(res.Outline.Entries),
		"output", outPath)
}

// waitStable retries until two consecutive stats report the same size.
// fsnotify fires Create before the writer finishes, so the first stats of
// a large copy usually disagree.
func (w *Watcher) waitStable(ctx context.Context, path string) error {
	lastSize := int64(-1)
	return retry.Do(
		func() error {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if info.Size() != lastSize {
				lastSize = info.Size()
				return fmt.Errorf("still growing: %d bytes", info.Size())
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(20),
		retry.Delay(250*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
