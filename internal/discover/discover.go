// Package discover finds corpus source files under a root directory.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	apperrors "github.com/corpustools/wordfreq/pkg/errors"
	"github.com/corpustools/wordfreq/pkg/logger"
)

// Options controls which files under the root qualify as corpus input.
type Options struct {
	// Extensions is the allow-list of file extensions (with leading dot).
	// Empty means every regular file qualifies.
	Extensions []string
	// IgnoreFile names an optional gitignore-style file at the corpus
	// root whose patterns exclude matching paths.
	IgnoreFile string
}

// Files walks root recursively and returns the qualifying file paths in
// deterministic (lexical) order. The root itself being missing or
// unreadable is fatal; unreadable entries below it are logged and skipped.
func Files(root string, opts Options) ([]string, error) {
	log := logger.WithComponent("discover")

	info, err := os.Stat(root)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrSourcesMissing, root, err.Error())
	}
	if !info.IsDir() {
		return nil, apperrors.New(apperrors.ErrSourcesMissing, root, "not a directory")
	}

	extSet := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}

	var gi *ignore.GitIgnore
	if opts.IgnoreFile != "" {
		if g, err := ignore.CompileIgnoreFile(filepath.Join(root, opts.IgnoreFile)); err == nil {
			gi = g
		}
	}

	var results []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable root means no input can be discovered at
			// all; anything deeper is skip-and-continue.
			if path == root {
				return err
			}
			log.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		// Skip symlinks
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		if len(extSet) > 0 {
			ext := strings.ToLower(filepath.Ext(name))
			if _, ok := extSet[ext]; !ok {
				return nil
			}
		}

		results = append(results, path)
		return nil
	})
	if err != nil {
		return nil, apperrors.New(apperrors.ErrSourcesMissing, root, err.Error())
	}

	return results, nil
}
