package types

// Section is the ranking unit: a chunk of one document's text, opened by a
// heading or carried over from the start of a page.
type Section struct {
	Document  string // Source document identifier (filename)
	Title     string // Nearest preceding heading, or a synthesized placeholder
	Page      int    // 1-based page the section starts on
	Text      string // Raw accumulated text
	IsHeading bool   // True when the section was opened by a classified heading
}

// ScoreBreakdown holds the individual bounded components that feed an
// importance score. Each component is in [0,1].
type ScoreBreakdown struct {
	PersonaRelevance float64
	TaskRelevance    float64
	LengthScore      float64
	HeadingBonus     float64
}

// ScoredSection is a Section with its computed importance and final rank.
type ScoredSection struct {
	Section
	Importance  float64
	Components  ScoreBreakdown
	Rank        int    // 1-based, unique within a collection; 0 until ranked
	RefinedText string // Cleaned, truncated excerpt for subsection analysis
}

// ExtractedSection is the report entry for one top-ranked section.
type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// SubsectionEntry is the report entry for one refined text excerpt.
type SubsectionEntry struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// ReportMetadata describes the collection run that produced a report.
type ReportMetadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// CollectionReport is the final output for one collection run.
type CollectionReport struct {
	Metadata           ReportMetadata     `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionEntry  `json:"subsection_analysis"`
}
