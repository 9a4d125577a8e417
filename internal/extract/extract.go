package extract

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/D4rk1d3/study/constants"
)

// OCR is the text-extraction oracle for images. Implementations return an
// empty string on failure, never an error.
type OCR interface {
	ExtractText(ctx context.Context, path string) string
}

// Extractor maps a stored file to plain text, dispatching on extension.
// Unsupported extensions yield an empty string, not an error; real read
// failures surface as errors and are recovered at the per-file boundary.
type Extractor struct {
	ocr    OCR
	logger *slog.Logger
}

func NewExtractor(ocr OCR, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{ocr: ocr, logger: logger}
}

// Extract returns the plain-text content of the file at path.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))

	switch constants.MapExtToFormat(ext) {
	case constants.FormatPDF:
		return extractPDF(path)
	case constants.FormatWord:
		return extractWord(path)
	case constants.FormatText:
		return extractText(path)
	case constants.FormatMarkdown:
		return extractMarkdown(path)
	case constants.FormatImage:
		if e.ocr == nil {
			e.logger.Warn("extract.no_ocr", "path", path)
			return "", nil
		}
		return e.ocr.ExtractText(ctx, path), nil
	default:
		e.logger.Warn("extract.unsupported_extension", "path", path, "ext", ext)
		return "", nil
	}
}
