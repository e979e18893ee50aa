package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corpustools/wordfreq/internal/compiler"
	"github.com/corpustools/wordfreq/internal/output"
	"github.com/corpustools/wordfreq/pkg/config"
	apperrors "github.com/corpustools/wordfreq/pkg/errors"
	"github.com/corpustools/wordfreq/pkg/logger"
	"github.com/corpustools/wordfreq/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to config file")
	sourcesDir := flag.String("sources", "", "corpus root directory (overrides config)")
	outputPath := flag.String("output", "", "output path, - for stdout (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return apperrors.ExitBadUsage
	}
	if *sourcesDir != "" {
		cfg.Sources.Dir = *sourcesDir
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting wordfreq",
		"sources", cfg.Sources.Dir,
		"output", cfg.Output.Path,
		"workers", cfg.Compiler.Workers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	langMap, stats, err := compiler.New(cfg, m).Compile(ctx)
	if err != nil {
		slog.Error("compile failed", "error", err)
		return apperrors.ExitCode(err)
	}

	writer := output.NewWriter(cfg.Output)
	if err := writer.Write(langMap); err != nil {
		slog.Error("writing output failed", "error", err)
		return apperrors.ExitCode(err)
	}

	slog.Info("done",
		"files", stats.FilesProcessed,
		"skipped", stats.FilesSkipped,
		"records", stats.Records,
		"bad_records", stats.BadRecords,
		"tokens", stats.Tokens,
		"duration", stats.Duration,
	)
	return apperrors.ExitOK
}
