package constants

// Stage is the canonical processing stage for rows in documents.
type Stage string

// Stable values (store these exact strings in DB).
const (
	StagePreparing   Stage = "preparing"   // created, not yet picked up
	StageOCR         Stage = "ocr"         // per-file text extraction
	StageParsing     Stage = "parsing"     // per-file structure analysis
	StageAnalyzing   Stage = "analyzing"   // per-file aggregation
	StageSummarizing Stage = "summarizing" // dedup + summary over combined text
	StageFinalizing  Stage = "finalizing"  // rendering output artifact
	StageCompleted   Stage = "completed"   // terminal success
	StageFailed      Stage = "failed"      // terminal failure
)

// Progress bases and per-file bands. OCR, parsing and analyzing each own a
// 20-point band interpolated over the document's files; the remaining stages
// are fixed points.
const (
	ProgressPreparing   = 0
	ProgressOCR         = 5
	ProgressParsing     = 25
	ProgressAnalyzing   = 45
	ProgressSummarizing = 65
	ProgressFinalizing  = 85
	ProgressCompleted   = 100
	ProgressFailed      = 0

	PerFileBand = 20
)

// Terminal reports whether s is one of the two terminal stages.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

func (s Stage) String() string { return string(s) }
