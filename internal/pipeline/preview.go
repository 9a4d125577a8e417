package pipeline

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/D4rk1d3/study/constants"
	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/entity"
	"github.com/D4rk1d3/study/internal/render"
	"github.com/D4rk1d3/study/internal/summarize"
)

const (
	previewExcerptLen   = 250
	previewTOCEntries   = 10
	previewGlossarySize = 3
)

// Preview recomputes a short read-only view of a completed document from
// its stored per-file results. Never persisted.
func (p *Processor) Preview(ctx context.Context, documentID uuid.UUID) (*entity.PreviewData, error) {
	doc, err := p.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, common.E(common.KindMissingEntity, "preview", "load document", err)
	}
	if doc.Stage != constants.StageCompleted {
		return nil, common.E(common.KindMissingEntity, "preview",
			"document is not completed (stage "+doc.Stage.String()+")", common.ErrInvalidInput)
	}

	contents, err := p.store.ProcessedContentForDocument(ctx, documentID)
	if err != nil {
		return nil, common.E(common.KindStorage, "preview", "load processed content", err)
	}

	var merged entity.ProcessedMetadata
	var parts []string
	for _, c := range contents {
		merged.Merge(c.Metadata)
		if strings.TrimSpace(c.Content) != "" {
			parts = append(parts, strings.TrimSpace(c.Content))
		}
	}
	combined := strings.Join(parts, "\n\n")

	toc := render.BuildTOC(merged.Headings)
	if len(toc) > previewTOCEntries {
		toc = toc[:previewTOCEntries]
	}

	glossary := summarize.Glossary(combined)
	if len(glossary) > previewGlossarySize {
		glossary = glossary[:previewGlossarySize]
	}

	return &entity.PreviewData{
		TableOfContents: toc,
		Excerpt:         excerpt(combined, previewExcerptLen),
		Glossary:        glossary,
	}, nil
}

func excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return strings.TrimSpace(text[:limit]) + "..."
}
