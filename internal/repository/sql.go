package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/D4rk1d3/study/constants"
	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/entity"
)

// SQLStore implements Store over database/sql for sqlite and postgres.
type SQLStore struct {
	db        *sql.DB
	dialect   string // "sqlite" or "pgx"
	uploadDir string
	outputDir string
	logger    *slog.Logger
}

var _ Store = (*SQLStore)(nil)

// rebind converts ?-placeholders to $n for postgres. SQL here is written
// once with ? and rebound per dialect.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// timeLayout is RFC3339 with fixed-width nanoseconds, so lexicographic
// order of stored timestamps matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func now() string { return time.Now().UTC().Format(timeLayout) }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *SQLStore) CreateDocument(ctx context.Context, title string, settings entity.ProcessingSettings) (uuid.UUID, error) {
	id := uuid.New()
	raw, err := json.Marshal(settings)
	if err != nil {
		return uuid.Nil, common.E(common.KindStorage, "store.create_document", "encode settings", err)
	}
	ts := now()
	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO documents (id, title, stage, progress, export_format, settings, created_at, updated_at)
		 VALUES (?, ?, ?, 0, ?, ?, ?, ?)`),
		id.String(), title, string(constants.StagePreparing), settings.ExportFormat, string(raw), ts, ts)
	if err != nil {
		s.logger.Error("store.create_document.failed", "title", title, "error", err)
		return uuid.Nil, common.E(common.KindStorage, "store.create_document", "insert document", err)
	}
	s.logger.Info("store.document.created", "document_id", id, "title", title, "format", settings.ExportFormat)
	return id, nil
}

func (s *SQLStore) SaveFile(ctx context.Context, documentID uuid.UUID, originalName, filename, contentType string, size int64) (uuid.UUID, error) {
	id := uuid.New()
	ts := now()
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO files (id, document_id, original_name, filename, content_type, size, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		id.String(), documentID.String(), originalName, filename, contentType, size,
		string(constants.FileStatusUploaded), ts, ts)
	if err != nil {
		s.logger.Error("store.save_file.failed", "document_id", documentID, "original_name", originalName, "error", err)
		return uuid.Nil, common.E(common.KindStorage, "store.save_file", "insert file", err)
	}
	return id, nil
}

func (s *SQLStore) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, title, stage, progress, export_format, output_path, settings, created_at, updated_at
		 FROM documents WHERE id = ?`), id.String())

	var (
		doc        entity.Document
		idStr      string
		outputPath sql.NullString
		rawSet     string
		created    string
		updated    string
		stage      string
	)
	err := row.Scan(&idStr, &doc.Title, &stage, &doc.Progress, &doc.ExportFormat, &outputPath, &rawSet, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.E(common.KindMissingEntity, "store.get_document", "document not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, common.E(common.KindStorage, "store.get_document", "query document", err)
	}
	doc.ID, _ = uuid.Parse(idStr)
	doc.Stage = constants.Stage(stage)
	doc.OutputPath = outputPath.String
	doc.CreatedAt = parseTime(created)
	doc.UpdatedAt = parseTime(updated)
	if err := json.Unmarshal([]byte(rawSet), &doc.Settings); err != nil {
		return nil, common.E(common.KindStorage, "store.get_document", "decode settings", err)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id FROM files WHERE document_id = ? ORDER BY created_at, id`), id.String())
	if err != nil {
		return nil, common.E(common.KindStorage, "store.get_document", "query file ids", err)
	}
	defer rows.Close()
	for rows.Next() {
		var fid string
		if err := rows.Scan(&fid); err != nil {
			return nil, common.E(common.KindStorage, "store.get_document", "scan file id", err)
		}
		parsed, err := uuid.Parse(fid)
		if err != nil {
			continue
		}
		doc.FileIDs = append(doc.FileIDs, parsed)
	}
	if err := rows.Err(); err != nil {
		return nil, common.E(common.KindStorage, "store.get_document", "iterate file ids", err)
	}
	return &doc, nil
}

func (s *SQLStore) GetSettings(ctx context.Context, documentID uuid.UUID) (entity.ProcessingSettings, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT settings FROM documents WHERE id = ?`), documentID.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ProcessingSettings{}, common.E(common.KindMissingEntity, "store.get_settings", "document settings not found", common.ErrNotFound)
	}
	if err != nil {
		return entity.ProcessingSettings{}, common.E(common.KindStorage, "store.get_settings", "query settings", err)
	}
	var settings entity.ProcessingSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return entity.ProcessingSettings{}, common.E(common.KindStorage, "store.get_settings", "decode settings", err)
	}
	return settings, nil
}

func (s *SQLStore) GetFile(ctx context.Context, fileID uuid.UUID) (*entity.StoredFile, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, document_id, original_name, filename, content_type, size, status, processed_content, metadata, created_at, updated_at
		 FROM files WHERE id = ?`), fileID.String())

	var (
		f       entity.StoredFile
		idStr   string
		docStr  string
		status  string
		content sql.NullString
		rawMeta sql.NullString
		created string
		updated string
	)
	err := row.Scan(&idStr, &docStr, &f.OriginalName, &f.Filename, &f.ContentType, &f.Size, &status, &content, &rawMeta, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.E(common.KindMissingEntity, "store.get_file", "file not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, common.E(common.KindStorage, "store.get_file", "query file", err)
	}
	f.ID, _ = uuid.Parse(idStr)
	f.DocumentID, _ = uuid.Parse(docStr)
	f.Status = constants.FileStatus(status)
	f.ProcessedContent = content.String
	f.CreatedAt = parseTime(created)
	f.UpdatedAt = parseTime(updated)
	if rawMeta.Valid && rawMeta.String != "" {
		var md entity.ProcessedMetadata
		if err := json.Unmarshal([]byte(rawMeta.String), &md); err == nil {
			f.Metadata = &md
		}
	}
	return &f, nil
}

func (s *SQLStore) FilePath(ctx context.Context, fileID uuid.UUID) (string, error) {
	var filename string
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT filename FROM files WHERE id = ?`), fileID.String()).Scan(&filename)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.E(common.KindMissingEntity, "store.file_path", "file not found", common.ErrNotFound)
	}
	if err != nil {
		return "", common.E(common.KindStorage, "store.file_path", "query filename", err)
	}
	return filepath.Join(s.uploadDir, filename), nil
}

func (s *SQLStore) OutputPath(documentID uuid.UUID, format string) string {
	return filepath.Join(s.outputDir, documentID.String()+"."+format)
}

func (s *SQLStore) WriteUpload(filename string, data []byte) error {
	if err := os.WriteFile(filepath.Join(s.uploadDir, filename), data, 0o644); err != nil {
		return common.E(common.KindStorage, "store.write_upload", "write upload", err)
	}
	return nil
}

func (s *SQLStore) StoreProcessedContent(ctx context.Context, fileID uuid.UUID, content string, md entity.ProcessedMetadata) error {
	raw, err := json.Marshal(md)
	if err != nil {
		return common.E(common.KindStorage, "store.processed_content", "encode metadata", err)
	}
	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE files SET processed_content = ?, metadata = ?, status = ?, updated_at = ? WHERE id = ?`),
		content, string(raw), string(constants.FileStatusProcessed), now(), fileID.String())
	if err != nil {
		s.logger.Error("store.processed_content.failed", "file_id", fileID, "error", err)
		return common.E(common.KindStorage, "store.processed_content", "update file", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.E(common.KindMissingEntity, "store.processed_content", "file not found", common.ErrNotFound)
	}
	return nil
}

func (s *SQLStore) ProcessedContentForDocument(ctx context.Context, documentID uuid.UUID) ([]ProcessedContent, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT processed_content, metadata FROM files
		 WHERE document_id = ? AND status = ?
		 ORDER BY created_at, id`),
		documentID.String(), string(constants.FileStatusProcessed))
	if err != nil {
		return nil, common.E(common.KindStorage, "store.document_content", "query processed files", err)
	}
	defer rows.Close()

	var out []ProcessedContent
	for rows.Next() {
		var content, rawMeta sql.NullString
		if err := rows.Scan(&content, &rawMeta); err != nil {
			return nil, common.E(common.KindStorage, "store.document_content", "scan row", err)
		}
		pc := ProcessedContent{Content: content.String}
		if rawMeta.Valid && rawMeta.String != "" {
			// A file with undecodable metadata still contributes its text.
			_ = json.Unmarshal([]byte(rawMeta.String), &pc.Metadata)
		}
		out = append(out, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, common.E(common.KindStorage, "store.document_content", "iterate rows", err)
	}
	return out, nil
}

func (s *SQLStore) UpdateStatus(ctx context.Context, documentID uuid.UUID, stage constants.Stage, progress int, lastError string) error {
	if lastError == "" {
		res, err := s.db.ExecContext(ctx, s.rebind(
			`UPDATE documents SET stage = ?, progress = ?, updated_at = ? WHERE id = ?`),
			string(stage), progress, now(), documentID.String())
		if err != nil {
			return common.E(common.KindStorage, "store.update_status", "update document", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return common.E(common.KindMissingEntity, "store.update_status", "document not found", common.ErrNotFound)
		}
		return nil
	}

	// Failure path: fold the error annotation into the settings JSON in the
	// same transaction as the stage write.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.E(common.KindStorage, "store.update_status", "begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT settings FROM documents WHERE id = ?`), documentID.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return common.E(common.KindMissingEntity, "store.update_status", "document not found", common.ErrNotFound)
	}
	if err != nil {
		return common.E(common.KindStorage, "store.update_status", "read settings", err)
	}
	var settings map[string]any
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		settings = map[string]any{}
	}
	settings["lastError"] = lastError
	annotated, err := json.Marshal(settings)
	if err != nil {
		return common.E(common.KindStorage, "store.update_status", "encode settings", err)
	}

	_, err = tx.ExecContext(ctx, s.rebind(
		`UPDATE documents SET stage = ?, progress = ?, settings = ?, updated_at = ? WHERE id = ?`),
		string(stage), progress, string(annotated), now(), documentID.String())
	if err != nil {
		return common.E(common.KindStorage, "store.update_status", "update document", err)
	}
	if err := tx.Commit(); err != nil {
		return common.E(common.KindStorage, "store.update_status", "commit", err)
	}
	return nil
}

func (s *SQLStore) SetDocumentOutput(ctx context.Context, documentID uuid.UUID, outputPath string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE documents SET output_path = ?, stage = ?, progress = ?, updated_at = ? WHERE id = ?`),
		outputPath, string(constants.StageCompleted), constants.ProgressCompleted, now(), documentID.String())
	if err != nil {
		return common.E(common.KindStorage, "store.set_output", "update document", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.E(common.KindMissingEntity, "store.set_output", "document not found", common.ErrNotFound)
	}
	s.logger.Info("store.document.output", "document_id", documentID, "path", outputPath)
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	s.logger.Info("closing store")
	return s.db.Close()
}
