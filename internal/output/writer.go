// Package output writes frequency tables as flat token/count lists.
package output

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/corpustools/wordfreq/internal/freq"
	"github.com/corpustools/wordfreq/pkg/config"
	apperrors "github.com/corpustools/wordfreq/pkg/errors"
	"github.com/corpustools/wordfreq/pkg/logger"
)

// Writer emits compiled frequency tables according to the output config.
type Writer struct {
	cfg    config.OutputConfig
	logger *slog.Logger
}

// NewWriter creates a Writer for the given output configuration.
func NewWriter(cfg config.OutputConfig) *Writer {
	return &Writer{
		cfg:    cfg,
		logger: logger.WithComponent("output"),
	}
}

// Write emits the combined frequency list to the configured path (stdout
// when the path is "-") and, when enabled, one list per language. Any
// write failure is fatal to the run.
func (w *Writer) Write(langMap freq.LanguageMap) error {
	combined := langMap.Combined()
	if w.cfg.MinCount > 1 {
		combined.Prune(w.cfg.MinCount)
	}

	if err := w.writeTable(combined, w.cfg.Path); err != nil {
		return err
	}
	w.logger.Info("frequency list written",
		"path", w.cfg.Path,
		"distinct_tokens", combined.Distinct(),
		"total_count", combined.Total(),
	)

	if !w.cfg.SplitByLanguage {
		return nil
	}
	if err := os.MkdirAll(w.cfg.LanguageDir, 0755); err != nil {
		return apperrors.New(apperrors.ErrOutputWrite, w.cfg.LanguageDir, err.Error())
	}
	for _, lang := range langMap.Languages() {
		table := langMap[lang]
		if w.cfg.MinCount > 1 {
			// Prune a copy; the caller's tables stay intact.
			pruned := freq.NewTable()
			pruned.Merge(table)
			pruned.Prune(w.cfg.MinCount)
			table = pruned
		}
		path := filepath.Join(w.cfg.LanguageDir, fmt.Sprintf("%s_%s.txt", w.cfg.LanguagePrefix, lang))
		if err := w.writeTable(table, path); err != nil {
			return err
		}
		w.logger.Info("language list written",
			"lang", lang,
			"path", path,
			"distinct_tokens", table.Distinct(),
		)
	}
	return nil
}

// writeTable emits one sorted table. File targets are written atomically
// via a temp file renamed on success.
func (w *Writer) writeTable(table *freq.Table, path string) error {
	if path == "-" {
		return w.writeEntries(os.Stdout, table, path)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return apperrors.New(apperrors.ErrOutputWrite, path, err.Error())
	}
	if err := w.writeEntries(f, table, path); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.New(apperrors.ErrOutputWrite, path, err.Error())
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return apperrors.New(apperrors.ErrOutputWrite, path, err.Error())
	}
	return nil
}

func (w *Writer) writeEntries(f *os.File, table *freq.Table, path string) error {
	sep := w.cfg.Separator
	if sep == "" {
		sep = "\t"
	}
	bw := bufio.NewWriter(f)
	for _, entry := range table.Emit() {
		if _, err := fmt.Fprintf(bw, "%s%s%d\n", entry.Token, sep, entry.Count); err != nil {
			return apperrors.New(apperrors.ErrOutputWrite, path, err.Error())
		}
	}
	if err := bw.Flush(); err != nil {
		return apperrors.New(apperrors.ErrOutputWrite, path, err.Error())
	}
	return nil
}
