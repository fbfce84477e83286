package webfiles

import (
	"bytes"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

// Compress gzips content at the given level. The gzip header carries no
// name and a zero mtime, so equal input always yields equal output.
// The writer stamps ModTime.Unix() unconditionally, hence the explicit epoch.
func Compress(content []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	w.ModTime = time.Unix(0, 0)
	if _, err := w.Write(content); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress gunzips data produced by Compress.
func Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// ReadAsset reads a source file and rejects content that is not UTF-8 text.
func ReadAsset(fsys afero.Fs, path string) ([]byte, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %w", ErrFileSystem, path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s", ErrEncoding, path)
	}
	return content, nil
}
