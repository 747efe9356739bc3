// Package rank scores document sections against a persona and task and
// assembles the importance-ordered collection report.
package rank

import (
	"strings"

	"github.com/docsieve/docsieve/internal/config"
	"github.com/docsieve/docsieve/internal/persona"
	"github.com/docsieve/docsieve/internal/types"
)

// Scorer computes importance scores for sections given one persona profile
// and one task description. It is immutable after construction and safe
// for concurrent use.
type Scorer struct {
	cfg        config.RankingConfig
	profile    persona.Profile
	taskTokens []string
}

// NewScorer builds a scorer for one collection run. The task description
// is tokenized once, with stopwords removed.
func NewScorer(cfg config.RankingConfig, profile persona.Profile, task string) *Scorer {
	return &Scorer{
		cfg:        cfg,
		profile:    profile,
		taskTokens: persona.Tokenize(task),
	}
}

// Score computes the bounded component scores and their weighted
// combination for one section. Deterministic, no side effects. A section
// with empty text scores zero on every component.
func (s *Scorer) Score(sec types.Section) (float64, types.ScoreBreakdown) {
	var b types.ScoreBreakdown

	text := strings.ToLower(strings.TrimSpace(sec.Text))
	if text == "" {
		return 0, b
	}

	b.PersonaRelevance = keywordDensity(text, s.profile.Keywords)
	b.TaskRelevance = keywordDensity(text, s.taskTokens)

	// Saturating length score: longer sections carry more signal up to the
	// cap, beyond which extra length is uninformative.
	if s.cfg.LengthCap > 0 {
		b.LengthScore = float64(len(sec.Text)) / float64(s.cfg.LengthCap)
		if b.LengthScore > 1.0 {
			b.LengthScore = 1.0
		}
	}

	if sec.IsHeading {
		b.HeadingBonus = 1.0
	}

	importance := s.cfg.PersonaWeight*b.PersonaRelevance +
		s.cfg.TaskWeight*b.TaskRelevance +
		s.cfg.LengthWeight*b.LengthScore +
		s.cfg.HeadingWeight*b.HeadingBonus

	return importance, b
}

// keywordDensity is the fraction of keywords occurring in the text,
// case-insensitive substring match. Bounded to [0,1] by construction; an
// empty keyword set scores zero.
func keywordDensity(lowerText string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}
