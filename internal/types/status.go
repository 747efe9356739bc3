package types

// DocumentStatus indicates how a document's extraction went.
type DocumentStatus string

const (
	// StatusOK indicates the document was extracted and classified cleanly.
	StatusOK DocumentStatus = "ok"
	// StatusDegraded indicates some runs were malformed and scored with
	// conservative defaults.
	StatusDegraded DocumentStatus = "degraded"
	// StatusFailed indicates extraction failed entirely; the document
	// contributes no sections.
	StatusFailed DocumentStatus = "failed"
)

// DocumentResult is the per-document outcome inside a collection run.
// Failures are isolated here rather than aborting sibling documents.
type DocumentResult struct {
	Document string
	Status   DocumentStatus
	Reasons  []string // Degradation or failure notes, empty when StatusOK
	Outline  Outline
	Sections []Section
}
