// Package features derives per-run classification features from the raw
// text runs of one document: the document's baseline font size, each run's
// size ratio against that baseline, and a resolved vertical position.
package features

import (
	"math"
	"sort"

	"github.com/docsieve/docsieve/internal/types"
)

// midPageOffset is the conservative position assumed for runs the
// extraction layer delivered without a bounding box.
const midPageOffset = 0.5

// RunFeatures holds the derived features for one text run, index-aligned
// with the input run list.
type RunFeatures struct {
	// SizeRatio is the run's font size relative to the document baseline.
	// 1.0 when either size is unknown.
	SizeRatio float64
	// TopOffset is the resolved vertical position (0.0 top, 1.0 bottom).
	// Mid-page when the run carried no position.
	TopOffset float64
	// Degraded is true when a missing attribute was replaced with a
	// conservative default.
	Degraded bool
}

// DocumentFeatures is the feature set for one document.
type DocumentFeatures struct {
	// Baseline is the document's dominant font size: the mode of all run
	// sizes, falling back to the median when no size repeats. Zero for an
	// empty document.
	Baseline float64
	Runs     []RunFeatures
}

// Extract computes the feature set for one document's ordered run list.
// An empty input yields an empty feature set; it is a valid degenerate
// case, not an error.
func Extract(runs []types.TextRun) DocumentFeatures {
	if len(runs) == 0 {
		return DocumentFeatures{}
	}

	baseline := baselineSize(runs)

	df := DocumentFeatures{
		Baseline: baseline,
		Runs:     make([]RunFeatures, len(runs)),
	}

	for i, run := range runs {
		rf := RunFeatures{SizeRatio: 1.0, TopOffset: midPageOffset}

		if run.FontSize > 0 && baseline > 0 {
			rf.SizeRatio = run.FontSize / baseline
		} else {
			rf.Degraded = true
		}

		if run.HasPosition() {
			rf.TopOffset = math.Min(run.TopOffset, 1.0)
		} else {
			rf.Degraded = true
		}

		df.Runs[i] = rf
	}

	return df
}

// baselineSize picks the dominant font size. Sizes are bucketed to one
// decimal place so floating point jitter from the extractor doesn't split
// the mode.
func baselineSize(runs []types.TextRun) float64 {
	counts := make(map[float64]int)
	sizes := make([]float64, 0, len(runs))

	for _, run := range runs {
		if run.FontSize <= 0 {
			continue
		}
		bucket := math.Round(run.FontSize*10) / 10
		counts[bucket]++
		sizes = append(sizes, bucket)
	}
	if len(sizes) == 0 {
		return 0
	}

	best, bestCount := 0.0, 0
	for size, count := range counts {
		if count > bestCount || (count == bestCount && size < best) {
			best, bestCount = size, count
		}
	}
	if bestCount > 1 {
		return best
	}

	// Every size is unique; the mode is meaningless, use the median.
	sort.Float64s(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 0 {
		return (sizes[mid-1] + sizes[mid]) / 2
	}
	return sizes[mid]
}
