// runextract extracts plain text from a single file and prints it.
// Useful for checking what the pipeline will see for a given source
// document without touching the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/extract"
	"github.com/D4rk1d3/study/internal/ocr"
)

func main() {
	file := flag.String("file", "", "path of the file to extract (required)")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := ocr.NewEngine(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	extractor := extract.NewExtractor(engine, logger)
	text, err := extractor.Extract(ctx, *file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "runextract:", err)
		os.Exit(1)
	}
	fmt.Println(text)
}
