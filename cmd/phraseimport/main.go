// Command phraseimport applies the database migrations and loads a phrase
// JSON export into the phrases table. It is intended to be run offline or as
// a deploy step, not as part of the main server.
//
// Flags:
//
//	--file     path to the JSON export (default: translator.file_path)
//	--replace  delete every stored phrase before importing
//	--dry-run  decode and validate the export without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/pidgin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/pidgin-backend/internal/adapter/postgres/phrase"
	"github.com/heartmarshall/pidgin-backend/internal/app"
	"github.com/heartmarshall/pidgin-backend/internal/app/importer"
	"github.com/heartmarshall/pidgin-backend/internal/config"
)

// Compile-time interface assertions.
var (
	_ importer.PhraseRepo = (*phrase.Repo)(nil)
	_ importer.TxManager  = (*postgres.TxManager)(nil)
)

func main() {
	fileFlag := flag.String("file", "", "path to the JSON export (default: translator.file_path)")
	replaceFlag := flag.Bool("replace", false, "delete every stored phrase before importing")
	dryRunFlag := flag.Bool("dry-run", false, "decode the export without writing to DB")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	path := *fileFlag
	if path == "" {
		path = cfg.Translator.FilePath
	}

	body, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read export", slog.String("path", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	opts := importer.Options{DryRun: *dryRunFlag, Replace: *replaceFlag}

	if opts.DryRun {
		res, err := importer.Run(ctx, body, opts, nil, nil, logger)
		if err != nil {
			logger.Error("dry run failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("dry run completed",
			slog.Int("records", res.Decoded),
			slog.Int("skipped", res.Skipped),
		)
		return
	}

	if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
		logger.Error("migrate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	res, err := importer.Run(ctx, body, opts, phrase.New(pool), postgres.NewTxManager(pool), logger)
	if err != nil {
		logger.Error("import failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		pool.Close()
		os.Exit(1)
	}

	logger.Info("phrases imported",
		slog.String("path", path),
		slog.Int("records", res.Decoded),
		slog.Int("skipped", res.Skipped),
		slog.Int64("written", res.Written),
		slog.Int("total", res.Total),
	)
}
