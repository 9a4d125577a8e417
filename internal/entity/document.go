package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/D4rk1d3/study/constants"
)

// Document is one compilation job: a set of uploaded files turned into a
// single study artifact. Stage and progress are the externally observable
// state of an in-flight run.
type Document struct {
	ID           uuid.UUID
	Title        string
	Stage        constants.Stage
	Progress     int
	ExportFormat string
	OutputPath   string // empty until completed
	Settings     ProcessingSettings
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// FileIDs in upload order; this order drives concatenation.
	FileIDs []uuid.UUID
}

// StoredFile is one uploaded source file belonging to a document.
// ProcessedContent and Metadata are set together when Status flips to
// processed, never independently.
type StoredFile struct {
	ID           uuid.UUID
	DocumentID   uuid.UUID
	OriginalName string
	Filename     string // stored name under the upload dir
	ContentType  string
	Size         int64
	Status       constants.FileStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ProcessedContent string
	Metadata         *ProcessedMetadata // nil until processed
}
