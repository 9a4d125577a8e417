// Package pipeline drives a document through the processing stages:
// extraction, structure analysis, aggregation, summarization and
// rendering. Per-file failures degrade to empty contributions; fatal
// errors move the document to failed.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/D4rk1d3/study/constants"
	"github.com/D4rk1d3/study/internal/analyze"
	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/dedupe"
	"github.com/D4rk1d3/study/internal/entity"
	"github.com/D4rk1d3/study/internal/render"
	"github.com/D4rk1d3/study/internal/repository"
	"github.com/D4rk1d3/study/internal/summarize"
)

// TextExtractor turns one stored file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Assistant is the AI collaborator, consumer-side. Every method hands
// back a usable fallback alongside its error.
type Assistant interface {
	Enabled() bool
	Rewrite(ctx context.Context, text string, level int) (string, error)
	Summarize(ctx context.Context, text string, level int) (string, error)
	GenerateGlossary(ctx context.Context, text string, keywords []string) ([]entity.GlossaryEntry, error)
}

// Processor owns one document's run through the stage machine.
type Processor struct {
	store     repository.Store
	extractor TextExtractor
	analyzer  analyze.Analyzer
	assistant Assistant
	renderer  *render.Renderer
	logger    *slog.Logger
}

func NewProcessor(store repository.Store, extractor TextExtractor, analyzer analyze.Analyzer,
	assistant Assistant, renderer *render.Renderer, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		store:     store,
		extractor: extractor,
		analyzer:  analyzer,
		assistant: assistant,
		renderer:  renderer,
		logger:    logger,
	}
}

// ProcessDocument runs the full pipeline for one document. On a fatal
// error the document moves to failed with the message recorded, and the
// error is returned; recoverable trouble is logged and absorbed.
func (p *Processor) ProcessDocument(ctx context.Context, documentID uuid.UUID) error {
	start := time.Now()
	log := p.logger.With("document_id", documentID.String())

	if err := p.run(ctx, documentID, log); err != nil {
		log.Error("pipeline.failed", "error", err, "kind", string(common.KindOf(err)))
		if uerr := p.store.UpdateStatus(ctx, documentID, constants.StageFailed,
			constants.ProgressFailed, err.Error()); uerr != nil {
			log.Error("pipeline.fail_status_write", "error", uerr)
		}
		return err
	}

	log.Info("pipeline.completed", "took", time.Since(start).String())
	return nil
}

func (p *Processor) run(ctx context.Context, documentID uuid.UUID, log *slog.Logger) error {
	doc, err := p.store.GetDocument(ctx, documentID)
	if err != nil {
		return common.E(common.KindMissingEntity, "pipeline", "load document", err)
	}
	settings, err := p.store.GetSettings(ctx, documentID)
	if err != nil {
		return common.E(common.KindMissingEntity, "pipeline", "load settings", err)
	}

	total := len(doc.FileIDs)
	log.Info("pipeline.start", "files", total, "format", settings.ExportFormat,
		"use_ai", settings.UseAI)

	// Extraction. Each file degrades to an empty contribution on failure.
	if err := p.setStatus(ctx, documentID, constants.StageOCR, constants.ProgressOCR); err != nil {
		return err
	}
	texts := make([]string, total)
	for i, fileID := range doc.FileIDs {
		texts[i] = p.extractFile(ctx, fileID, log)
		progress := Interpolate(constants.ProgressOCR, constants.PerFileBand, i+1, total)
		if err := p.setStatus(ctx, documentID, constants.StageOCR, progress); err != nil {
			return err
		}
	}

	// Structure analysis, per file.
	if err := p.setStatus(ctx, documentID, constants.StageParsing, constants.ProgressParsing); err != nil {
		return err
	}
	metadatas := make([]entity.ProcessedMetadata, total)
	for i := range texts {
		metadatas[i] = p.analyzer.Analyze(ctx, texts[i])
		progress := Interpolate(constants.ProgressParsing, constants.PerFileBand, i+1, total)
		if err := p.setStatus(ctx, documentID, constants.StageParsing, progress); err != nil {
			return err
		}
	}

	// Aggregation: persist per-file results, then combine in upload order.
	if err := p.setStatus(ctx, documentID, constants.StageAnalyzing, constants.ProgressAnalyzing); err != nil {
		return err
	}
	var merged entity.ProcessedMetadata
	var parts []string
	for i, fileID := range doc.FileIDs {
		if err := p.store.StoreProcessedContent(ctx, fileID, texts[i], metadatas[i]); err != nil {
			return common.E(common.KindStorage, "pipeline", "store processed content", err)
		}
		merged.Merge(metadatas[i])
		if strings.TrimSpace(texts[i]) != "" {
			parts = append(parts, strings.TrimSpace(texts[i]))
		}
		progress := Interpolate(constants.ProgressAnalyzing, constants.PerFileBand, i+1, total)
		if err := p.setStatus(ctx, documentID, constants.StageAnalyzing, progress); err != nil {
			return err
		}
	}
	combined := strings.Join(parts, "\n\n")

	// Condensation over the combined text.
	if err := p.setStatus(ctx, documentID, constants.StageSummarizing, constants.ProgressSummarizing); err != nil {
		return err
	}
	content := p.condense(ctx, combined, settings, log)

	var glossary []entity.GlossaryEntry
	if settings.GenerateGlossary {
		glossary = p.buildGlossary(ctx, combined, merged.Keywords, settings, log)
	}

	// Rendering.
	if err := p.setStatus(ctx, documentID, constants.StageFinalizing, constants.ProgressFinalizing); err != nil {
		return err
	}
	outputPath := p.store.OutputPath(documentID, settings.ExportFormat)
	err = p.renderer.Render(ctx, settings.ExportFormat, outputPath, render.Input{
		Title:    doc.Title,
		Content:  content,
		Headings: merged.Headings,
		Keywords: merged.Keywords,
		Glossary: glossary,
		WithTOC:  settings.GenerateIndex,
	})
	if err != nil {
		return err
	}

	if err := p.store.SetDocumentOutput(ctx, documentID, outputPath); err != nil {
		return common.E(common.KindStorage, "pipeline", "record output", err)
	}
	return nil
}

// extractFile resolves and extracts one file, absorbing failures into an
// empty contribution.
func (p *Processor) extractFile(ctx context.Context, fileID uuid.UUID, log *slog.Logger) string {
	path, err := p.store.FilePath(ctx, fileID)
	if err != nil {
		log.Warn("pipeline.file_path", "file_id", fileID.String(), "error", err)
		return ""
	}
	text, err := p.extractor.Extract(ctx, path)
	if err != nil {
		log.Warn("pipeline.extract_recovered", "file_id", fileID.String(),
			"kind", string(common.KindExtraction), "error", err)
		return ""
	}
	return text
}

// condense applies dedup, then summarization, then the optional AI
// rewrite over the summarized text. AI trouble never breaks the run; the
// content falls back to the local path at each step.
func (p *Processor) condense(ctx context.Context, combined string, settings entity.ProcessingSettings, log *slog.Logger) string {
	content := combined
	if settings.DeduplicateContent {
		content = dedupe.Paragraphs(content)
	}

	aiActive := settings.UseAI && p.assistant != nil && p.assistant.Enabled()

	if settings.SummarizationLevel > 1 {
		if aiActive {
			summary, err := p.assistant.Summarize(ctx, content, settings.SummarizationLevel)
			if err != nil {
				log.Warn("pipeline.summarize_fallback", "kind", string(common.KindOf(err)), "error", err)
				content = summarize.Extract(content, settings.SummarizationLevel)
			} else {
				content = summary
			}
		} else {
			content = summarize.Extract(content, settings.SummarizationLevel)
		}
	}

	if aiActive {
		// A failed rewrite leaves the summarized text untouched.
		rewritten, err := p.assistant.Rewrite(ctx, content, settings.RewriteLevel)
		if err != nil {
			log.Warn("pipeline.rewrite_fallback", "kind", string(common.KindOf(err)), "error", err)
		} else {
			content = rewritten
		}
	}

	return content
}

func (p *Processor) buildGlossary(ctx context.Context, combined string, keywords []string, settings entity.ProcessingSettings, log *slog.Logger) []entity.GlossaryEntry {
	if settings.UseAI && p.assistant != nil && p.assistant.Enabled() {
		entries, err := p.assistant.GenerateGlossary(ctx, combined, keywords)
		if err == nil && len(entries) > 0 {
			return entries
		}
		log.Warn("pipeline.glossary_fallback", "kind", string(common.KindOf(err)), "error", err)
	}
	return summarize.Glossary(combined)
}

func (p *Processor) setStatus(ctx context.Context, documentID uuid.UUID, stage constants.Stage, progress int) error {
	if err := p.store.UpdateStatus(ctx, documentID, stage, progress, ""); err != nil {
		return common.E(common.KindStorage, "pipeline", "update status", err)
	}
	return nil
}
