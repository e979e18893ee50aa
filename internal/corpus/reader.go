// Package corpus streams records out of source files. A source file holds
// one record per line; lines that parse as JSON objects are treated as
// tweet records carrying a text body and a language tag, anything else is
// a plain-text record. Compression is chosen by file extension.
package corpus

import (
	"bufio"
	"compress/bzip2"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	apperrors "github.com/corpustools/wordfreq/pkg/errors"
)

// Record is one unit of text extracted from a source file.
type Record struct {
	Text string
	Lang string
}

// tweet is the JSONL shape exported by the corpus source.
type tweet struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Reader streams records from a single source file. It is not safe for
// concurrent use.
type Reader struct {
	path      string
	file      *os.File
	decoder   io.Closer
	scanner   *bufio.Scanner
	bytesRead int64
	line      int64
}

// Open opens path for streaming. maxLineBytes bounds the scanner buffer;
// social-media exports occasionally contain multi-megabyte lines.
func Open(path string, maxLineBytes int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrFileUnreadable, path, err.Error())
	}

	var src io.Reader = f
	var decoder io.Closer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bz2":
		src = bzip2.NewReader(f)
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, apperrors.New(apperrors.ErrFileUnreadable, path, err.Error())
		}
		src = gz
		decoder = gz
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, apperrors.New(apperrors.ErrFileUnreadable, path, err.Error())
		}
		rc := zr.IOReadCloser()
		src = rc
		decoder = rc
	case ".lz4":
		src = lz4.NewReader(f)
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	return &Reader{
		path:    path,
		file:    f,
		decoder: decoder,
		scanner: scanner,
	}, nil
}

// Next returns the next record. It returns io.EOF when the file is
// exhausted, a record-scoped ErrBadEncoding for lines that cannot be
// decoded (the caller may skip and call Next again), and a file-scoped
// ErrFileUnreadable when the underlying stream fails.
func (r *Reader) Next() (Record, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		r.line++
		r.bytesRead += int64(len(line)) + 1
		if line == "" {
			continue
		}
		if !utf8.ValidString(line) {
			return Record{}, apperrors.Newf(apperrors.ErrBadEncoding, r.path, "invalid UTF-8 on line %d", r.line)
		}
		if strings.HasPrefix(strings.TrimSpace(line), "{") {
			var tw tweet
			if err := json.Unmarshal([]byte(line), &tw); err != nil {
				return Record{}, apperrors.Newf(apperrors.ErrBadEncoding, r.path, "line %d: %v", r.line, err)
			}
			if tw.Text == "" {
				continue
			}
			return Record{Text: tw.Text, Lang: tw.Lang}, nil
		}
		return Record{Text: line}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, apperrors.New(apperrors.ErrFileUnreadable, r.path, err.Error())
	}
	return Record{}, io.EOF
}

// BytesRead returns the number of decompressed bytes consumed so far.
func (r *Reader) BytesRead() int64 {
	return r.bytesRead
}

// Close releases the underlying file and any decompressor state.
func (r *Reader) Close() error {
	if r.decoder != nil {
		r.decoder.Close()
	}
	return r.file.Close()
}
