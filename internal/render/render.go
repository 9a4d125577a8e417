// Package render writes the compiled study notes to their final format.
package render

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/D4rk1d3/study/constants"
	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/entity"
)

// Input carries everything a format writer needs.
type Input struct {
	Title       string
	Content     string
	Headings    []entity.Heading
	Keywords    []string
	Glossary    []entity.GlossaryEntry
	WithTOC     bool
	GeneratedAt time.Time
}

// Renderer dispatches to the per-format writers.
type Renderer struct {
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Render writes the document at path in the requested format. Any failure
// is a render-classified error, which aborts the run.
func (r *Renderer) Render(ctx context.Context, format, path string, in Input) error {
	if err := ctx.Err(); err != nil {
		return common.E(common.KindRender, "render", "canceled", err)
	}
	if in.GeneratedAt.IsZero() {
		in.GeneratedAt = time.Now()
	}

	if !constants.IsExportFormat(format) {
		return common.E(common.KindRender, "render", "unsupported export format "+format, common.ErrInvalidInput)
	}

	start := time.Now()
	var err error
	switch format {
	case "pdf":
		err = writePDF(path, in)
	case "docx":
		err = writeDOCX(path, in)
	case "html":
		err = writeHTML(path, in)
	case "xlsx":
		err = writeXLSX(path, in)
	}
	if err != nil {
		return common.E(common.KindRender, "render."+format, "write output", err)
	}

	r.logger.Info("render.ok", "format", format, "path", path,
		"took", time.Since(start).String())
	return nil
}

// paragraphs splits content on blank lines for the writers that lay out
// paragraph by paragraph.
func paragraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
