// Package compiler runs the corpus pipeline: discover source files, fan
// them out to workers that tokenize records into per-worker frequency
// tables, and merge the tables into one exact result.
package compiler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corpustools/wordfreq/internal/corpus"
	"github.com/corpustools/wordfreq/internal/discover"
	"github.com/corpustools/wordfreq/internal/freq"
	"github.com/corpustools/wordfreq/internal/tokenizer"
	"github.com/corpustools/wordfreq/pkg/config"
	apperrors "github.com/corpustools/wordfreq/pkg/errors"
	"github.com/corpustools/wordfreq/pkg/logger"
	"github.com/corpustools/wordfreq/pkg/metrics"
)

// Stats summarizes one compile run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	Records         uint64
	BadRecords      uint64
	Tokens          uint64
	Duration        time.Duration
}

// Compiler owns one run of the pipeline. Construct it at process start,
// call Compile once, and consume the returned tables.
type Compiler struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a Compiler. metrics may be nil when the metrics server is
// disabled.
func New(cfg *config.Config, m *metrics.Metrics) *Compiler {
	return &Compiler{
		cfg:     cfg,
		metrics: m,
		logger:  logger.WithComponent("compiler"),
	}
}

// Compile processes the whole corpus and returns the merged per-language
// frequency tables. Per-file and per-record failures are logged, counted
// and skipped; only a missing corpus root or a cancelled context abort
// the run. An empty corpus yields an empty map and no error.
func (c *Compiler) Compile(ctx context.Context) (freq.LanguageMap, Stats, error) {
	start := time.Now()

	paths, err := discover.Files(c.cfg.Sources.Dir, discover.Options{
		Extensions: c.cfg.Sources.Extensions,
		IgnoreFile: c.cfg.Sources.IgnoreFile,
	})
	if err != nil {
		return nil, Stats{}, err
	}
	c.logger.Info("corpus discovered",
		"root", c.cfg.Sources.Dir,
		"files", len(paths),
	)
	if c.metrics != nil {
		c.metrics.FilesDiscoveredTotal.Add(float64(len(paths)))
	}

	workers := c.cfg.Compiler.Workers
	if workers > len(paths) && len(paths) > 0 {
		workers = len(paths)
	}

	// One table set and one stats block per worker: no locks on the
	// counting path, merged by key after all workers finish.
	workerMaps := make([]freq.LanguageMap, workers)
	workerStats := make([]Stats, workers)
	pathCh := make(chan string)
	var processed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(pathCh)
		for _, path := range paths {
			select {
			case pathCh <- path:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		workerMaps[i] = freq.NewLanguageMap()
		stats := &workerStats[i]
		local := workerMaps[i]
		g.Go(func() error {
			if c.metrics != nil {
				c.metrics.ActiveWorkers.Inc()
				defer c.metrics.ActiveWorkers.Dec()
			}
			for path := range pathCh {
				if err := gctx.Err(); err != nil {
					return err
				}
				c.processFile(path, local, stats)
				c.reportProgress(int(processed.Add(1)), len(paths))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	merged := freq.NewLanguageMap()
	total := Stats{FilesDiscovered: len(paths)}
	for i := 0; i < workers; i++ {
		merged.Merge(workerMaps[i])
		total.FilesProcessed += workerStats[i].FilesProcessed
		total.FilesSkipped += workerStats[i].FilesSkipped
		total.Records += workerStats[i].Records
		total.BadRecords += workerStats[i].BadRecords
		total.Tokens += workerStats[i].Tokens
	}
	total.Duration = time.Since(start)

	if c.metrics != nil {
		c.metrics.DistinctTokens.Set(float64(merged.Combined().Distinct()))
	}
	c.logger.Info("corpus compiled",
		"files", total.FilesProcessed,
		"skipped", total.FilesSkipped,
		"records", total.Records,
		"tokens", total.Tokens,
		"duration", total.Duration,
	)
	return merged, total, nil
}

// processFile streams one file's records into the worker-local tables.
// All failures below the file level are recoverable.
func (c *Compiler) processFile(path string, local freq.LanguageMap, stats *Stats) {
	fileStart := time.Now()

	reader, err := corpus.Open(path, c.cfg.Compiler.MaxLineBytes)
	if err != nil {
		c.logger.Warn("skipping unreadable file", "path", path, "error", err)
		stats.FilesSkipped++
		if c.metrics != nil {
			c.metrics.FilesProcessedTotal.WithLabelValues("skipped").Inc()
		}
		return
	}
	defer reader.Close()

	var fileRecords, fileTokens uint64
	minLen := c.cfg.Tokenizer.MinTokenLength
	for {
		record, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, apperrors.ErrBadEncoding) {
				stats.BadRecords++
				if c.metrics != nil {
					c.metrics.RecordsTotal.WithLabelValues("bad_encoding").Inc()
				}
				continue
			}
			// Stream broke mid-file; keep what was already counted.
			c.logger.Warn("file read failed, skipping remainder", "path", path, "error", err)
			stats.FilesSkipped++
			stats.Records += fileRecords
			stats.Tokens += fileTokens
			if c.metrics != nil {
				c.metrics.FilesProcessedTotal.WithLabelValues("skipped").Inc()
			}
			return
		}

		fileRecords++
		table := local.Table(record.Lang)
		for _, token := range tokenizer.TokenizeMin(record.Text, minLen) {
			table.Record(token)
			fileTokens++
		}
	}

	stats.FilesProcessed++
	stats.Records += fileRecords
	stats.Tokens += fileTokens
	if c.metrics != nil {
		c.metrics.FilesProcessedTotal.WithLabelValues("ok").Inc()
		c.metrics.RecordsTotal.WithLabelValues("ok").Add(float64(fileRecords))
		c.metrics.TokensTotal.Add(float64(fileTokens))
		c.metrics.BytesReadTotal.Add(float64(reader.BytesRead()))
		c.metrics.FileDuration.Observe(time.Since(fileStart).Seconds())
	}
}

func (c *Compiler) reportProgress(done, total int) {
	every := c.cfg.Compiler.ProgressEvery
	if every <= 0 {
		return
	}
	if done%every == 0 || done == total {
		c.logger.Info("progress",
			"processed", done,
			"total", total,
			"percent", float64(done)/float64(total)*100,
		)
	}
}
