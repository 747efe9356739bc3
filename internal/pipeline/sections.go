package pipeline

import (
	"fmt"
	"strings"

	"github.com/docsieve/docsieve/internal/types"
)

// segmentSections splits a document's run stream into ranking units. A
// classified heading opens a new section titled by the heading text; other
// runs accumulate into the current section. Sections never span pages:
// text continuing onto a new page starts a fresh section that inherits the
// nearest preceding heading as its title, or a synthesized page placeholder
// when no heading has been seen yet.
func segmentSections(doc string, runs []types.TextRun, cands []types.HeadingCandidate) []types.Section {
	sections := make([]types.Section, 0)

	var current *types.Section
	lastHeading := ""

	flush := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			sections = append(sections, *current)
		}
		current = nil
	}

	carryTitle := func(page int) string {
		if lastHeading != "" {
			return lastHeading
		}
		return fmt.Sprintf("Page %d", page)
	}

	page := 0
	for i, run := range runs {
		if run.Page != page {
			flush()
			page = run.Page
		}

		if cands[i].Level != types.LevelNone {
			flush()
			lastHeading = run.Text
			current = &types.Section{
				Document:  doc,
				Title:     run.Text,
				Page:      run.Page,
				Text:      run.Text,
				IsHeading: true,
			}
			continue
		}

		if current == nil {
			current = &types.Section{
				Document: doc,
				Title:    carryTitle(run.Page),
				Page:     run.Page,
			}
		}
		if current.Text == "" {
			current.Text = run.Text
		} else {
			current.Text += " " + run.Text
		}
	}
	flush()

	return sections
}
