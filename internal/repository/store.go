package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/D4rk1d3/study/constants"
	"github.com/D4rk1d3/study/internal/entity"
)

// ProcessedContent is one file's contribution to the document aggregate,
// in upload order.
type ProcessedContent struct {
	Content  string
	Metadata entity.ProcessedMetadata
}

// Store is the persistence collaborator the pipeline drives. One SQL
// implementation backs it (sqlite or postgres); tests substitute fakes.
type Store interface {
	CreateDocument(ctx context.Context, title string, settings entity.ProcessingSettings) (uuid.UUID, error)
	SaveFile(ctx context.Context, documentID uuid.UUID, originalName, filename, contentType string, size int64) (uuid.UUID, error)

	GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	GetSettings(ctx context.Context, documentID uuid.UUID) (entity.ProcessingSettings, error)
	GetFile(ctx context.Context, fileID uuid.UUID) (*entity.StoredFile, error)

	// FilePath resolves a file id to its on-disk location under the upload dir.
	FilePath(ctx context.Context, fileID uuid.UUID) (string, error)
	// OutputPath is where the rendered artifact for a document goes.
	OutputPath(documentID uuid.UUID, format string) string
	// WriteUpload stores raw uploaded bytes under the upload dir.
	WriteUpload(filename string, data []byte) error

	// StoreProcessedContent records extracted text + metadata and flips the
	// file status to processed in the same write.
	StoreProcessedContent(ctx context.Context, fileID uuid.UUID, content string, md entity.ProcessedMetadata) error
	// ProcessedContentForDocument returns processed files' contributions in
	// upload order.
	ProcessedContentForDocument(ctx context.Context, documentID uuid.UUID) ([]ProcessedContent, error)

	// UpdateStatus persists a stage transition. A non-empty lastError is
	// recorded as an annotation inside the settings JSON.
	UpdateStatus(ctx context.Context, documentID uuid.UUID, stage constants.Stage, progress int, lastError string) error
	// SetDocumentOutput records the artifact path and forces
	// stage=completed, progress=100 in the same statement.
	SetDocumentOutput(ctx context.Context, documentID uuid.UUID, outputPath string) error

	Ping(ctx context.Context) error
	Close() error
}
