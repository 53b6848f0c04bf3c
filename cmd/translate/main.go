// Command translate runs the local translation engine against a phrase JSON
// export without starting the server. Text comes from the arguments or, when
// none are given, from stdin. The result is printed as indented JSON.
//
// Flags:
//
//	--file       path to the JSON export (default: translator.file_path)
//	--direction  eng-to-pidgin or pidgin-to-eng (default: eng-to-pidgin)
//	--paragraph  use context-aware paragraph translation
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/pidgin-backend/internal/adapter/source/jsonexport"
	"github.com/heartmarshall/pidgin-backend/internal/app"
	"github.com/heartmarshall/pidgin-backend/internal/config"
	"github.com/heartmarshall/pidgin-backend/internal/domain"
	"github.com/heartmarshall/pidgin-backend/internal/service/translation"
)

func main() {
	fileFlag := flag.String("file", "", "path to the JSON export (default: translator.file_path)")
	directionFlag := flag.String("direction", string(domain.DirectionEngToPidgin), "eng-to-pidgin or pidgin-to-eng")
	paragraphFlag := flag.Bool("paragraph", false, "use context-aware paragraph translation")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Logs go to stderr, so stdout carries only the JSON result.
	logger := app.NewLogger(cfg.Log)

	path := *fileFlag
	if path == "" {
		path = cfg.Translator.FilePath
	}

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("read stdin", slog.String("error", err.Error()))
			os.Exit(1)
		}
		text = string(b)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := translation.NewService(logger, jsonexport.NewFileLoader(path, logger), nil, translation.Options{
		ChunkWindow:     cfg.Translator.ChunkWindow,
		FuzzyThreshold:  cfg.Translator.FuzzyThreshold,
		SuggestionLimit: cfg.Translator.SuggestionLimit,
		MaxTextLength:   cfg.Translator.MaxTextLength,
	})
	if _, err := svc.Reload(ctx); err != nil {
		logger.Error("load phrases", slog.String("path", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	in := translation.TranslateInput{
		Text:      text,
		Direction: domain.Direction(*directionFlag),
		Mode:      domain.TranslateModeLocal,
	}

	var out any
	if *paragraphFlag {
		out, err = svc.TranslateParagraphInput(in)
	} else {
		out, err = svc.Translate(ctx, in)
	}
	if err != nil {
		logger.Error("translate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
