package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/D4rk1d3/study/internal/common"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS documents (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	stage         TEXT NOT NULL DEFAULT 'preparing',
	progress      INTEGER NOT NULL DEFAULT 0,
	export_format TEXT NOT NULL DEFAULT 'pdf',
	output_path   TEXT,
	settings      TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS files (
	id                TEXT PRIMARY KEY,
	document_id       TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	original_name     TEXT NOT NULL,
	filename          TEXT NOT NULL,
	content_type      TEXT NOT NULL,
	size              INTEGER NOT NULL,
	status            TEXT NOT NULL DEFAULT 'uploaded',
	processed_content TEXT,
	metadata          TEXT,
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_files_document ON files(document_id, created_at);
`

// Open connects the configured driver, bootstraps the schema, and ensures
// the upload/output directories exist. For postgres it builds a pgx pool and
// wraps it as database/sql; sqlite opens in-process.
func Open(ctx context.Context, dbCfg common.DatabaseConfig, stCfg common.StorageConfig, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var db *sql.DB
	switch dbCfg.Driver {
	case "pgx":
		logger.Info("connecting to database", "driver", "pgx")
		pc, err := pgxpool.ParseConfig(dbCfg.DSN)
		if err != nil {
			return nil, common.E(common.KindStorage, "repository.open", "parse dsn", err)
		}
		pc.MaxConns = dbCfg.MaxConns
		pc.MinConns = dbCfg.MinConns
		pc.MaxConnLifetime = dbCfg.MaxConnLifetime
		pc.MaxConnIdleTime = dbCfg.MaxConnIdleTime
		pc.ConnConfig.RuntimeParams["application_name"] = "study"
		if dbCfg.StatementTimeout > 0 {
			pc.ConnConfig.RuntimeParams["statement_timeout"] = dbCfg.StatementTimeout.String()
		}

		dialCtx, cancel := context.WithTimeout(ctx, dbCfg.DialTimeout)
		defer cancel()
		pool, err := pgxpool.NewWithConfig(dialCtx, pc)
		if err != nil {
			return nil, common.E(common.KindStorage, "repository.open", "connect postgres", err)
		}
		db = stdlib.OpenDBFromPool(pool)
	case "sqlite":
		logger.Info("opening database", "driver", "sqlite", "dsn", dbCfg.DSN)
		var err error
		db, err = sql.Open("sqlite", dbCfg.DSN)
		if err != nil {
			return nil, common.E(common.KindStorage, "repository.open", "open sqlite", err)
		}
		// modernc sqlite is in-process; a single writer avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	default:
		return nil, common.E(common.KindStorage, "repository.open", fmt.Sprintf("unsupported driver %q", dbCfg.Driver), common.ErrInvalidInput)
	}

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, common.E(common.KindStorage, "repository.open", "bootstrap schema", err)
	}

	for _, dir := range []string{stCfg.UploadDir, stCfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			_ = db.Close()
			return nil, common.E(common.KindStorage, "repository.open", "create storage dir", err)
		}
	}

	logger.Info("store ready", "driver", dbCfg.Driver)
	return &SQLStore{
		db:        db,
		dialect:   dbCfg.Driver,
		uploadDir: stCfg.UploadDir,
		outputDir: stCfg.OutputDir,
		logger:    logger,
	}, nil
}
