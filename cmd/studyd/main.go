// studyd compiles a directory of source documents into a single study
// artifact: extract, analyze, summarize, render.
package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/D4rk1d3/study/constants"
	"github.com/D4rk1d3/study/internal/ai"
	"github.com/D4rk1d3/study/internal/analyze"
	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/entity"
	"github.com/D4rk1d3/study/internal/extract"
	"github.com/D4rk1d3/study/internal/ocr"
	"github.com/D4rk1d3/study/internal/pipeline"
	"github.com/D4rk1d3/study/internal/render"
	"github.com/D4rk1d3/study/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "studyd:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dir      = flag.String("dir", "", "directory of source files to compile")
		docFlag  = flag.String("doc", "", "existing document id to re-run instead of -dir")
		title    = flag.String("title", "Study Notes", "title of the generated material")
		format   = flag.String("format", "pdf", "export format: pdf, docx, html or xlsx")
		level    = flag.Int("level", 3, "summarization level 1 (full text) to 5 (most condensed)")
		index    = flag.Bool("index", true, "generate a table of contents")
		glossary = flag.Bool("glossary", false, "generate a glossary")
		dedup    = flag.Bool("dedupe", false, "remove near-duplicate paragraphs")
		useAI    = flag.Bool("ai", false, "use the AI assistant for rewriting and summarizing")
		rewrite  = flag.Int("rewrite", 0, "AI rewrite level 1-5 (0 = default)")
		preview  = flag.Bool("preview", false, "print a preview after completion")
	)
	flag.Parse()

	if *dir == "" && *docFlag == "" {
		flag.Usage()
		return fmt.Errorf("one of -dir or -doc is required")
	}

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := common.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Database, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		return err
	}

	var docID uuid.UUID
	var settings entity.ProcessingSettings
	if *docFlag != "" {
		docID, err = uuid.Parse(*docFlag)
		if err != nil {
			return fmt.Errorf("bad -doc id: %w", err)
		}
		settings, err = store.GetSettings(ctx, docID)
		if err != nil {
			return err
		}
	} else {
		settings, err = entity.NewProcessingSettings(entity.ProcessingSettings{
			SummarizationLevel: *level,
			GenerateIndex:      *index,
			GenerateGlossary:   *glossary,
			DeduplicateContent: *dedup,
			ExportFormat:       *format,
			UseAI:              *useAI,
			RewriteLevel:       *rewrite,
		})
		if err != nil {
			return err
		}
		docID, err = createDocument(ctx, store, *title, settings, *dir)
		if err != nil {
			return err
		}
		logger.Info("document created", "document_id", docID.String())
	}

	client := ai.NewClient(cfg.AI, logger)
	var analyzer analyze.Analyzer
	if settings.UseAI && client.Enabled() {
		analyzer = analyze.NewAIAnalyzer(client, logger)
	} else {
		analyzer = analyze.NewTextAnalyzer(logger)
	}

	engine := ocr.NewEngine(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	extractor := extract.NewExtractor(engine, logger)
	proc := pipeline.NewProcessor(store, extractor, analyzer, client, render.NewRenderer(logger), logger)

	if err := proc.ProcessDocument(ctx, docID); err != nil {
		return err
	}

	doc, err := store.GetDocument(ctx, docID)
	if err != nil {
		return err
	}
	fmt.Println("output:", doc.OutputPath)

	if *preview {
		pv, err := proc.Preview(ctx, docID)
		if err != nil {
			return err
		}
		printPreview(pv)
	}
	return nil
}

func printPreview(pv *entity.PreviewData) {
	if len(pv.TableOfContents) > 0 {
		fmt.Println("\nTable of Contents")
		for _, e := range pv.TableOfContents {
			fmt.Printf("  %s  %s\n", e.Number, e.Title)
		}
	}
	if pv.Excerpt != "" {
		fmt.Println("\nExcerpt")
		fmt.Println(" ", pv.Excerpt)
	}
	if len(pv.Glossary) > 0 {
		fmt.Println("\nGlossary")
		for _, g := range pv.Glossary {
			fmt.Printf("  %s: %s\n", g.Term, g.Definition)
		}
	}
}

// createDocument registers the document and copies every regular file in
// dir into the upload area, in name order.
func createDocument(ctx context.Context, store *repository.SQLStore, title string, s entity.ProcessingSettings, dir string) (uuid.UUID, error) {
	docID, err := store.CreateDocument(ctx, title, s)
	if err != nil {
		return uuid.Nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return uuid.Nil, fmt.Errorf("read source dir: %w", err)
	}

	added := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		src := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(src)
		if err != nil {
			return uuid.Nil, fmt.Errorf("read %s: %w", src, err)
		}

		ext := constants.NormalizeExt(filepath.Ext(e.Name()))
		stored := uuid.New().String() + "." + ext
		if err := store.WriteUpload(stored, data); err != nil {
			return uuid.Nil, err
		}

		contentType := mime.TypeByExtension("." + ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if _, err := store.SaveFile(ctx, docID, e.Name(), stored, contentType, int64(len(data))); err != nil {
			return uuid.Nil, err
		}
		added++
	}
	if added == 0 {
		return uuid.Nil, fmt.Errorf("no files found in %s", dir)
	}
	return docID, nil
}
