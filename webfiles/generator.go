package webfiles

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dendrascience/webfilegen/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Result summarises a finished generation run.
type Result struct {
	OutputPath      string
	Assets          int
	OriginalBytes   int
	CompressedBytes int
}

// Generator turns a directory of web assets into a single C header.
type Generator struct {
	fs  afero.Fs
	cfg config.Config
	out io.Writer
	log *slog.Logger
}

// NewGenerator returns a Generator that works on the host filesystem.
func NewGenerator(cfg config.Config, out io.Writer, log *slog.Logger) (*Generator, error) {
	return NewGeneratorWithFS(afero.NewOsFs(), cfg, out, log)
}

// NewGeneratorWithFS is NewGenerator on an arbitrary filesystem. Progress
// lines are written to out.
func NewGeneratorWithFS(fsys afero.Fs, cfg config.Config, out io.Writer, log *slog.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}

	return &Generator{
		fs:  fsys,
		cfg: cfg,
		out: out,
		log: log.With(slog.String("item", "Generator")),
	}, nil
}

// Plan lists the assets that Generate would embed, without reading them.
func (g *Generator) Plan() ([]Asset, error) {
	names, err := ListAssets(g.fs, g.cfg.SourceDir, g.log)
	if err != nil {
		return nil, err
	}

	assets := make([]Asset, len(names))
	for i, name := range names {
		assets[i] = NewAsset(name, g.cfg.ExtensionMode)
	}
	return assets, nil
}

// Generate writes the header to a temporary file beside the output path and
// renames it into place once every asset has been written. On failure the
// temporary file is removed and any previous output is left untouched.
func (g *Generator) Generate(ctx context.Context) (res Result, err error) {
	assets, err := g.Plan()
	if err != nil {
		return res, err
	}

	dir := filepath.Dir(g.cfg.OutputPath)
	if err := g.fs.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("%w: cannot create output directory %s: %w", ErrFileSystem, dir, err)
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(g.cfg.OutputPath)+"."+uuid.NewString()+".tmp")
	f, err := g.fs.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return res, fmt.Errorf("%w: cannot create %s: %w", ErrFileSystem, tmpPath, err)
	}
	g.log.Debug("Writing temporary header", slog.String("path", tmpPath))

	defer func() {
		if err == nil {
			return
		}
		f.Close()
		if rmErr := g.fs.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			g.log.Warn("Cannot remove temporary header", slog.String("path", tmpPath), slog.Any("error", rmErr))
		}
	}()

	w := bufio.NewWriter(f)
	res, err = g.write(ctx, w, assets)
	if err != nil {
		return res, err
	}
	if err = w.Flush(); err != nil {
		return res, fmt.Errorf("%w: cannot write %s: %w", ErrFileSystem, tmpPath, err)
	}
	if err = f.Close(); err != nil {
		return res, fmt.Errorf("%w: cannot close %s: %w", ErrFileSystem, tmpPath, err)
	}
	if err = g.fs.Rename(tmpPath, g.cfg.OutputPath); err != nil {
		return res, fmt.Errorf("%w: cannot move header into place: %w", ErrFileSystem, err)
	}

	res.OutputPath = g.cfg.OutputPath
	g.log.Info("Header written",
		slog.String("path", res.OutputPath),
		slog.Int("assets", res.Assets),
		slog.Int("original_bytes", res.OriginalBytes),
		slog.Int("compressed_bytes", res.CompressedBytes))

	return res, nil
}

func (g *Generator) write(ctx context.Context, w io.StringWriter, assets []Asset) (Result, error) {
	var res Result

	if err := writeStrings(w, Preamble, MacroOpening()); err != nil {
		return res, err
	}
	for _, a := range assets {
		if err := writeStrings(w, HandlerSnippet(a)); err != nil {
			return res, err
		}
	}
	if err := writeStrings(w, BlockSeparator); err != nil {
		return res, err
	}

	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		fmt.Fprintf(g.out, "Converting %s...", a.Name)

		content, err := ReadAsset(g.fs, filepath.Join(g.cfg.SourceDir, a.Name))
		if err != nil {
			return res, err
		}
		data, err := Compress(content, g.cfg.CompressionLevel)
		if err != nil {
			return res, fmt.Errorf("cannot compress %s: %w", a.Name, err)
		}

		fmt.Fprintf(g.out, "(%d -> %d byte)...", len(content), len(data))

		if err := writeStrings(w, ArrayDeclaration(a.Symbol, data)); err != nil {
			return res, err
		}

		fmt.Fprintln(g.out, "OK")

		res.Assets++
		res.OriginalBytes += len(content)
		res.CompressedBytes += len(data)
	}

	return res, nil
}

func writeStrings(w io.StringWriter, parts ...string) error {
	for _, s := range parts {
		if _, err := w.WriteString(s); err != nil {
			return fmt.Errorf("%w: cannot write header: %w", ErrFileSystem, err)
		}
	}
	return nil
}
