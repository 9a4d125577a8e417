package analyze

import (
	"context"
	"log/slog"

	"github.com/D4rk1d3/study/internal/entity"
)

// HeadingGenerator is the slice of the AI assistant this package needs.
type HeadingGenerator interface {
	GenerateHeadings(ctx context.Context, text string) ([]entity.Heading, error)
}

// AIAnalyzer asks a model for the heading structure and keeps keyword
// extraction local. Any failure on the AI side drops the whole call back
// to the traditional analyzer.
type AIAnalyzer struct {
	gen         HeadingGenerator
	traditional *TextAnalyzer
	logger      *slog.Logger
}

func NewAIAnalyzer(gen HeadingGenerator, logger *slog.Logger) *AIAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AIAnalyzer{
		gen:         gen,
		traditional: NewTextAnalyzer(logger),
		logger:      logger,
	}
}

func (a *AIAnalyzer) Analyze(ctx context.Context, text string) entity.ProcessedMetadata {
	if a.gen == nil {
		return a.traditional.Analyze(ctx, text)
	}

	headings, err := a.gen.GenerateHeadings(ctx, text)
	if err != nil || len(headings) == 0 {
		a.logger.Warn("analyze.ai.fallback", "error", err)
		return a.traditional.Analyze(ctx, text)
	}

	return entity.ProcessedMetadata{
		Headings: headings,
		Keywords: ExtractKeywords(text),
	}
}
