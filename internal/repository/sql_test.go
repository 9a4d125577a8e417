package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D4rk1d3/study/constants"
	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/entity"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(context.Background(),
		common.DatabaseConfig{Driver: "sqlite", DSN: "file:" + filepath.Join(dir, "test.db")},
		common.StorageConfig{UploadDir: filepath.Join(dir, "uploads"), OutputDir: filepath.Join(dir, "outputs")},
		nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSettings() entity.ProcessingSettings {
	return entity.ProcessingSettings{
		SummarizationLevel: 3,
		GenerateIndex:      true,
		ExportFormat:       "pdf",
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	docID, err := store.CreateDocument(ctx, "Networking Notes", testSettings())
	require.NoError(t, err)

	doc, err := store.GetDocument(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, "Networking Notes", doc.Title)
	assert.Equal(t, constants.StagePreparing, doc.Stage)
	assert.Equal(t, 0, doc.Progress)
	assert.Equal(t, "pdf", doc.ExportFormat)
	assert.Empty(t, doc.OutputPath)
	assert.Empty(t, doc.FileIDs)
	assert.False(t, doc.CreatedAt.IsZero())

	settings, err := store.GetSettings(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, 3, settings.SummarizationLevel)
	assert.True(t, settings.GenerateIndex)
}

func TestGetDocumentNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.GetDocument(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, common.KindMissingEntity, common.KindOf(err))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFileLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	docID, err := store.CreateDocument(ctx, "Doc", testSettings())
	require.NoError(t, err)

	require.NoError(t, store.WriteUpload("stored-a.txt", []byte("file a")))
	fileA, err := store.SaveFile(ctx, docID, "a.txt", "stored-a.txt", "text/plain", 6)
	require.NoError(t, err)
	fileB, err := store.SaveFile(ctx, docID, "b.txt", "stored-b.txt", "text/plain", 6)
	require.NoError(t, err)

	doc, err := store.GetDocument(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{fileA, fileB}, doc.FileIDs, "file ids keep upload order")

	path, err := store.FilePath(ctx, fileA)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.uploadDir, "stored-a.txt"), path)

	f, err := store.GetFile(ctx, fileA)
	require.NoError(t, err)
	assert.Equal(t, constants.FileStatusUploaded, f.Status)
	assert.Nil(t, f.Metadata)

	md := entity.ProcessedMetadata{
		Headings: []entity.Heading{{Text: "Intro", Level: 1}},
		Keywords: []string{"network"},
	}
	require.NoError(t, store.StoreProcessedContent(ctx, fileA, "extracted text", md))

	f, err = store.GetFile(ctx, fileA)
	require.NoError(t, err)
	assert.Equal(t, constants.FileStatusProcessed, f.Status)
	assert.Equal(t, "extracted text", f.ProcessedContent)
	require.NotNil(t, f.Metadata)
	assert.Equal(t, md.Headings, f.Metadata.Headings)

	// Only processed files contribute to the aggregate.
	contents, err := store.ProcessedContentForDocument(ctx, docID)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "extracted text", contents[0].Content)
	assert.Equal(t, []string{"network"}, contents[0].Metadata.Keywords)
}

func TestStoreProcessedContentMissingFile(t *testing.T) {
	store := openTestStore(t)
	err := store.StoreProcessedContent(context.Background(), uuid.New(), "x", entity.ProcessedMetadata{})
	require.Error(t, err)
	assert.Equal(t, common.KindMissingEntity, common.KindOf(err))
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	docID, err := store.CreateDocument(ctx, "Doc", testSettings())
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(ctx, docID, constants.StageOCR, constants.ProgressOCR, ""))
	doc, err := store.GetDocument(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, constants.StageOCR, doc.Stage)
	assert.Equal(t, constants.ProgressOCR, doc.Progress)

	t.Run("missing document", func(t *testing.T) {
		err := store.UpdateStatus(ctx, uuid.New(), constants.StageOCR, 5, "")
		require.Error(t, err)
		assert.Equal(t, common.KindMissingEntity, common.KindOf(err))
	})

	t.Run("failure records last error in settings", func(t *testing.T) {
		require.NoError(t, store.UpdateStatus(ctx, docID, constants.StageFailed,
			constants.ProgressFailed, "render: boom"))

		doc, err := store.GetDocument(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, constants.StageFailed, doc.Stage)
		assert.Equal(t, "render: boom", doc.Settings.LastError)

		// The rest of the settings survive the annotation.
		assert.Equal(t, 3, doc.Settings.SummarizationLevel)
		assert.True(t, doc.Settings.GenerateIndex)
	})
}

func TestSetDocumentOutput(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	docID, err := store.CreateDocument(ctx, "Doc", testSettings())
	require.NoError(t, err)

	out := store.OutputPath(docID, "pdf")
	require.NoError(t, store.SetDocumentOutput(ctx, docID, out))

	doc, err := store.GetDocument(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, constants.StageCompleted, doc.Stage)
	assert.Equal(t, constants.ProgressCompleted, doc.Progress)
	assert.Equal(t, out, doc.OutputPath)
}

func TestRebind(t *testing.T) {
	sqlite := &SQLStore{dialect: "sqlite"}
	pg := &SQLStore{dialect: "pgx"}

	q := "SELECT a FROM t WHERE b = ? AND c = ?"
	assert.Equal(t, q, sqlite.rebind(q))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", pg.rebind(q))
}
