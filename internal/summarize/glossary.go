package summarize

import (
	"fmt"

	"github.com/D4rk1d3/study/internal/analyze"
	"github.com/D4rk1d3/study/internal/entity"
)

const maxGlossaryTerms = 10

// Glossary builds a keyword-based glossary when no model is available.
// Definitions are placeholders; real definitions come from the AI path.
func Glossary(text string) []entity.GlossaryEntry {
	keywords := analyze.ExtractKeywords(text)
	if len(keywords) > maxGlossaryTerms {
		keywords = keywords[:maxGlossaryTerms]
	}

	entries := make([]entity.GlossaryEntry, 0, len(keywords))
	for _, kw := range keywords {
		entries = append(entries, entity.GlossaryEntry{
			Term:       kw,
			Definition: fmt.Sprintf("Key term %q recurring in the source material.", kw),
		})
	}
	return entries
}
