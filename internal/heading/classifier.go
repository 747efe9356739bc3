// Package heading turns positioned text runs into a leveled document
// outline. The classifier scores each run against additive heading
// signals; the builder assembles accepted candidates into an Outline in
// reading order.
package heading

import (
	"unicode/utf8"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/features"
	"github.com/docsieve/docsieve/internal/types"
)

// Classifier scores text runs against heading criteria. It is stateless
// apart from its configuration and safe for concurrent use.
type Classifier struct {
	cfg config.HeadingConfig
}

// NewClassifier creates a classifier with the given tuning constants.
func NewClassifier(cfg config.HeadingConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify scores one run and assigns a level. Every signal is an
// independent bounded contribution, so adding a positive signal to an
// otherwise-fixed run never lowers confidence.
func (c *Classifier) Classify(run types.TextRun, f features.RunFeatures) types.HeadingCandidate {
	cand := types.HeadingCandidate{
		Run:       run,
		Level:     types.LevelNone,
		Pattern:   types.PatternNone,
		TopOffset: f.TopOffset,
	}

	if IsNoise(run.Text) {
		return cand
	}

	confidence := 0.0

	// Font size above the document baseline, capped.
	if f.SizeRatio > 1.0 {
		contribution := (f.SizeRatio - 1.0) * c.cfg.SizeRatioGain
		if contribution > c.cfg.SizeRatioCap {
			contribution = c.cfg.SizeRatioCap
		}
		confidence += contribution
	}

	if run.Bold {
		confidence += c.cfg.BoldBonus
	}

	cand.Pattern = matchPattern(run.Text)
	if cand.Pattern != types.PatternNone {
		confidence += c.cfg.PatternBonus
	}

	length := utf8.RuneCountInString(run.Text)
	if length >= c.cfg.MinLength && length <= c.cfg.MaxLength {
		confidence += c.cfg.LengthBonus
	}

	if f.TopOffset <= c.cfg.TopFraction {
		confidence += c.cfg.PositionBonus
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	cand.Confidence = confidence

	switch {
	case confidence >= c.cfg.H1Threshold:
		cand.Level = types.LevelH1
	case confidence >= c.cfg.H2Threshold:
		cand.Level = types.LevelH2
	case confidence >= c.cfg.AcceptFloor:
		cand.Level = types.LevelH3
	default:
		cand.Level = types.LevelNone
	}

	return cand
}

// ClassifyAll classifies every run in a document using its derived
// feature set. The returned slice is index-aligned with the input.
func (c *Classifier) ClassifyAll(runs []types.TextRun, df features.DocumentFeatures) []types.HeadingCandidate {
	cands := make([]types.HeadingCandidate, len(runs))
	for i, run := range runs {
		cands[i] = c.Classify(run, df.Runs[i])
	}
	return cands
}
