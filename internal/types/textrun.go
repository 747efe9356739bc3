// Package types provides shared types used across multiple packages.
// This package has no dependencies on other docsieve packages to avoid import cycles.
package types

// TextRun is one decoded text fragment on one page, as delivered by the
// PDF extraction layer. Runs are immutable once extracted.
type TextRun struct {
	Text     string  // Decoded text, whitespace-trimmed
	Page     int     // 1-based page number
	FontSize float64 // Intrinsic font size in points
	Bold     bool    // Bold formatting flag
	// TopOffset is the top of the run's bounding box as a fraction of page
	// height (0.0 = top of page, 1.0 = bottom). Negative means the
	// extraction layer had no position for this run.
	TopOffset float64
}

// HasPosition reports whether the extraction layer supplied a vertical
// position for this run.
func (r TextRun) HasPosition() bool {
	return r.TopOffset >= 0
}

// Level classifies a text run's place in a document outline.
type Level string

const (
	LevelTitle Level = "Title"
	LevelH1    Level = "H1"
	LevelH2    Level = "H2"
	LevelH3    Level = "H3"
	LevelNone  Level = "None"
)

// PatternClass identifies which heading text pattern a run matched.
// Patterns are checked in a fixed priority order (AllCaps, Numbered,
// TitleCase) so a run matches at most one class.
type PatternClass string

const (
	PatternAllCaps   PatternClass = "all_caps"
	PatternNumbered  PatternClass = "numbered"
	PatternTitleCase PatternClass = "title_case"
	PatternNone      PatternClass = "none"
)

// HeadingCandidate is a classified text run. Confidence is bounded to
// [0,1] and Level is LevelNone only when confidence fell below the
// acceptance floor.
type HeadingCandidate struct {
	Run        TextRun
	Level      Level
	Confidence float64
	Pattern    PatternClass
	// TopOffset is the resolved vertical position (defaulted to mid-page
	// for malformed runs). Aggregation sorts on (Page, TopOffset).
	TopOffset float64
}

// OutlineEntry is one heading in a document outline.
type OutlineEntry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the structural summary of one document: a title plus the
// accepted headings in reading order.
type Outline struct {
	Title   string         `json:"title"`
	Entries []OutlineEntry `json:"outline"`
}
