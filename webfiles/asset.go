package webfiles

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dendrascience/webfilegen/internal/config"
	"github.com/spf13/afero"
)

const (
	// NotFoundPage is the only asset served with a non-200 status.
	NotFoundPage = "error404.html"

	mimeTypeDefault = "text/plain"
)

var mimeTypes = map[string]string{
	"js":   "application/javascript",
	"css":  "text/css",
	"html": "text/html",
	"svg":  "image/svg+xml",
}

// Asset is a file from the source directory together with everything the
// header needs to know about it.
type Asset struct {
	Name   string
	Symbol string
	MIME   string
	Status int
}

// NewAsset derives the symbol, MIME type and status for filename.
func NewAsset(name string, mode config.ExtensionMode) Asset {
	return Asset{
		Name:   name,
		Symbol: SymbolName(name),
		MIME:   MIMEType(name, mode),
		Status: StatusCode(name),
	}
}

// Route is the URL path the asset is registered under.
func (a Asset) Route() string {
	return "/" + a.Name
}

// SymbolName turns a filename into the C identifier of its byte array.
// Characters other than '.' are not escaped.
func SymbolName(filename string) string {
	return strings.ToLower(strings.ReplaceAll(filename, ".", "_"))
}

// Extension returns the segment of filename that is looked up in the MIME
// table, or "" when filename has no dot.
func Extension(filename string, mode config.ExtensionMode) string {
	if mode == config.ExtensionLast {
		i := strings.LastIndexByte(filename, '.')
		if i < 0 {
			return ""
		}
		return filename[i+1:]
	}

	_, rest, ok := strings.Cut(filename, ".")
	if !ok {
		return ""
	}
	ext, _, _ := strings.Cut(rest, ".")
	return ext
}

// MIMEType maps the extension of filename to a Content-Type, falling back to
// text/plain.
func MIMEType(filename string, mode config.ExtensionMode) string {
	if t, ok := mimeTypes[Extension(filename, mode)]; ok {
		return t
	}
	return mimeTypeDefault
}

// StatusCode is 404 for NotFoundPage and 200 for everything else.
func StatusCode(filename string) int {
	if filename == NotFoundPage {
		return http.StatusNotFound
	}
	return http.StatusOK
}

// ListAssets returns the names of the regular, non-hidden files in dir in
// the order the filesystem lists them.
func ListAssets(fsys afero.Fs, dir string, log *slog.Logger) ([]string, error) {
	d, err := fsys.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open source directory %s: %w", ErrFileSystem, dir, err)
	}
	defer d.Close()

	entries, err := d.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot list source directory %s: %w", ErrFileSystem, dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, name := range entries {
		if strings.HasPrefix(name, ".") {
			log.Debug("Skip hidden file", slog.String("name", name))
			continue
		}

		path := filepath.Join(dir, name)
		info, err := fsys.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot stat %s: %w", ErrFileSystem, path, err)
		}
		if !info.Mode().IsRegular() {
			log.Debug("Skip non-regular entry", slog.String("path", path), slog.String("mode", info.Mode().String()))
			continue
		}

		names = append(names, name)
	}

	return names, nil
}
