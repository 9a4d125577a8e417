package entity

// Heading is one table-of-contents candidate. Level 1 is top-level.
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// GlossaryEntry is one term/definition pair.
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ProcessedMetadata is the structured result of analyzing extracted text:
// headings in document order, distinct keywords, and (at the document level)
// an optional generated glossary.
type ProcessedMetadata struct {
	Headings []Heading       `json:"headings"`
	Keywords []string        `json:"keywords"`
	Glossary []GlossaryEntry `json:"glossary,omitempty"`
}

// Merge appends other's headings and unions its keywords, preserving
// first-encounter order. Glossaries are not merged; the document-level
// glossary is generated once over the aggregate.
func (m *ProcessedMetadata) Merge(other ProcessedMetadata) {
	m.Headings = append(m.Headings, other.Headings...)

	seen := make(map[string]struct{}, len(m.Keywords))
	for _, k := range m.Keywords {
		seen[k] = struct{}{}
	}
	for _, k := range other.Keywords {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		m.Keywords = append(m.Keywords, k)
	}
}

// TOCEntry is one numbered line of a rendered table of contents.
type TOCEntry struct {
	Number string `json:"number"`
	Title  string `json:"title"`
	Level  int    `json:"level"`
}

// PreviewData is a derived, read-only view of a completed document:
// truncated TOC, a short excerpt, and at most three glossary entries.
// Never persisted; recomputed per request.
type PreviewData struct {
	TableOfContents []TOCEntry      `json:"tableOfContents"`
	Excerpt         string          `json:"excerpt"`
	Glossary        []GlossaryEntry `json:"glossary"`
}
