package corpus

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/corpustools/wordfreq/pkg/errors"
)

const maxLine = 1 << 20

func writeRaw(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func readAll(t *testing.T, path string) ([]Record, error) {
	t.Helper()
	r, err := Open(path, maxLine)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var records []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

func TestPlainTextRecords(t *testing.T) {
	path := writeRaw(t, "plain.txt", []byte("hello world\n\nsecond line\n"))
	records, err := readAll(t, path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{Text: "hello world"}, records[0])
	assert.Equal(t, Record{Text: "second line"}, records[1])
}

func TestJSONLTweetRecords(t *testing.T) {
	data := []byte(`{"text":"hello twitter","lang":"en"}` + "\n" +
		`{"text":"hallo welt","lang":"de"}` + "\n" +
		`{"text":"","lang":"en"}` + "\n")
	path := writeRaw(t, "tweets.jsonl", data)
	records, err := readAll(t, path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{Text: "hello twitter", Lang: "en"}, records[0])
	assert.Equal(t, Record{Text: "hallo welt", Lang: "de"}, records[1])
}

func TestMixedPlainAndJSON(t *testing.T) {
	data := []byte("just a line\n" + `{"text":"a tweet","lang":"en"}` + "\n")
	path := writeRaw(t, "mixed.txt", data)
	records, err := readAll(t, path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "just a line", records[0].Text)
	assert.Equal(t, "en", records[1].Lang)
}

func TestBadJSONIsRecordScoped(t *testing.T) {
	data := []byte(`{"text": broken` + "\n" + `{"text":"fine","lang":"en"}` + "\n")
	path := writeRaw(t, "bad.jsonl", data)

	r, err := Open(path, maxLine)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	assert.ErrorIs(t, err, apperrors.ErrBadEncoding)

	// The reader must recover on the next call.
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "fine", rec.Text)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestInvalidUTF8IsRecordScoped(t *testing.T) {
	data := []byte("ok line\n\xff\xfe broken\nanother ok\n")
	path := writeRaw(t, "latin.txt", data)

	r, err := Open(path, maxLine)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "ok line", rec.Text)

	_, err = r.Next()
	assert.ErrorIs(t, err, apperrors.ErrBadEncoding)

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "another ok", rec.Text)
}

func TestMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"), maxLine)
	assert.ErrorIs(t, err, apperrors.ErrFileUnreadable)
}

func TestBzip2Records(t *testing.T) {
	// Pre-compressed fixture; the standard library only decodes bzip2.
	records, err := readAll(t, filepath.Join("testdata", "sample.bz2"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{Text: "hello bzip2 corpus"}, records[0])
	assert.Equal(t, Record{Text: "compressed tweet", Lang: "en"}, records[1])
}

func TestGzipRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte("compressed line one\ncompressed line two\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	records, err := readAll(t, path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "compressed line one", records[0].Text)
}

func TestZstdRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(`{"text":"zstd tweet","lang":"en"}` + "\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	records, err := readAll(t, path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Record{Text: "zstd tweet", Lang: "en"}, records[0])
}

func TestLZ4Records(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.lz4")
	f, err := os.Create(path)
	require.NoError(t, err)
	lw := lz4.NewWriter(f)
	_, err = lw.Write([]byte("lz4 line\n"))
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, f.Close())

	records, err := readAll(t, path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "lz4 line", records[0].Text)
}

func TestBytesRead(t *testing.T) {
	path := writeRaw(t, "sized.txt", []byte("0123456789\n"))
	r, err := Open(path, maxLine)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(11), r.BytesRead())
}
