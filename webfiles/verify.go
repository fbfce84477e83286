package webfiles

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Names and symbols are matched up to the end of their line so filenames
// containing spaces or punctuation parse back.
var (
	routePattern = regexp.MustCompile(`server\.on\("/([^\n]*)", HTTP_GET, \[\]\(AsyncWebServerRequest\* request\) \{\\\n` +
		`\treply\(request, (\d+), "([^"\n]*)", ([^\n]+), sizeof\(([^\n]+)\)\);`)
	arrayPattern = regexp.MustCompile(`const uint8_t ([^\n]+?)\[\] PROGMEM = \{ ([^}]*) \};`)
)

// Route is a handler registration parsed back from a header.
type Route struct {
	Name   string
	Status int
	MIME   string
	Symbol string
}

// Header is the parsed form of a generated header.
type Header struct {
	Routes []Route
	Arrays map[string][]byte
	// Symbols keeps the array declaration order.
	Symbols []string
}

// ParseHeader reads back the routes and byte arrays of a generated header.
func ParseHeader(content []byte) (*Header, error) {
	if !bytes.HasPrefix(content, []byte(Preamble+MacroOpening())) {
		return nil, fmt.Errorf("%w: missing preamble", ErrMalformedHeader)
	}

	h := &Header{Arrays: make(map[string][]byte)}

	for _, m := range routePattern.FindAllSubmatch(content, -1) {
		if !bytes.Equal(m[4], m[5]) {
			return nil, fmt.Errorf("%w: route %s: sizeof(%s) does not match %s", ErrMalformedHeader, m[1], m[5], m[4])
		}
		status, err := strconv.Atoi(string(m[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: route %s: bad status %q", ErrMalformedHeader, m[1], m[2])
		}
		h.Routes = append(h.Routes, Route{
			Name:   string(m[1]),
			Status: status,
			MIME:   string(m[3]),
			Symbol: string(m[4]),
		})
	}

	for _, m := range arrayPattern.FindAllSubmatch(content, -1) {
		symbol := string(m[1])
		if _, dup := h.Arrays[symbol]; dup {
			return nil, fmt.Errorf("%w: array %s declared twice", ErrMalformedHeader, symbol)
		}
		data, err := parseHexList(string(m[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: array %s: %w", ErrMalformedHeader, symbol, err)
		}
		h.Arrays[symbol] = data
		h.Symbols = append(h.Symbols, symbol)
	}

	return h, nil
}

func parseHexList(list string) ([]byte, error) {
	if list == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	data := make([]byte, len(parts))
	for i, p := range parts {
		hex, ok := strings.CutPrefix(strings.TrimSpace(p), "0x")
		if !ok {
			return nil, fmt.Errorf("byte %d: %q is not a hex literal", i, p)
		}
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("byte %d: %w", i, err)
		}
		data[i] = byte(v)
	}
	return data, nil
}

// Problem is one inconsistency between a header and its source directory.
type Problem struct {
	Asset  string
	Reason string
}

func (p Problem) String() string {
	return p.Asset + ": " + p.Reason
}

// Report is the outcome of Verify.
type Report struct {
	Checked  int
	Problems []Problem
}

// OK reports whether the header matched the source directory.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) add(asset, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{Asset: asset, Reason: fmt.Sprintf(format, args...)})
}

// Verify checks the header at the configured output path against the
// configured source directory: every asset must have a matching route and
// an array that decompresses to its current content, and the header must not
// carry anything for assets that are gone.
func (g *Generator) Verify(ctx context.Context) (Report, error) {
	var rep Report

	assets, err := g.Plan()
	if err != nil {
		return rep, err
	}

	content, err := afero.ReadFile(g.fs, g.cfg.OutputPath)
	if err != nil {
		return rep, fmt.Errorf("%w: cannot read header %s: %w", ErrFileSystem, g.cfg.OutputPath, err)
	}
	h, err := ParseHeader(content)
	if err != nil {
		return rep, err
	}

	routes := make(map[string]Route, len(h.Routes))
	for _, r := range h.Routes {
		routes[r.Name] = r
	}

	known := make(map[string]struct{}, len(assets))
	symbols := make(map[string]struct{}, len(assets))

	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Checked++
		known[a.Name] = struct{}{}
		symbols[a.Symbol] = struct{}{}

		g.checkRoute(&rep, a, routes)

		data, ok := h.Arrays[a.Symbol]
		if !ok {
			rep.add(a.Name, "no array %s in header", a.Symbol)
			continue
		}
		g.checkContent(&rep, a, data)
	}

	for _, r := range h.Routes {
		if _, ok := known[r.Name]; !ok {
			rep.add(r.Name, "route has no source file")
		}
	}
	for _, s := range h.Symbols {
		if _, ok := symbols[s]; !ok {
			rep.add(s, "array has no source file")
		}
	}

	return rep, nil
}

func (g *Generator) checkRoute(rep *Report, a Asset, routes map[string]Route) {
	r, ok := routes[a.Name]
	if !ok {
		rep.add(a.Name, "no route %s in header", a.Route())
		return
	}
	if r.Symbol != a.Symbol {
		rep.add(a.Name, "route serves %s, want %s", r.Symbol, a.Symbol)
	}
	if r.Status != a.Status {
		rep.add(a.Name, "route status %d, want %d", r.Status, a.Status)
	}
	if r.MIME != a.MIME {
		rep.add(a.Name, "route MIME type %s, want %s", r.MIME, a.MIME)
	}
}

func (g *Generator) checkContent(rep *Report, a Asset, data []byte) {
	got, err := Decompress(data)
	if err != nil {
		rep.add(a.Name, "cannot decompress array: %v", err)
		return
	}
	want, err := afero.ReadFile(g.fs, filepath.Join(g.cfg.SourceDir, a.Name))
	if err != nil {
		rep.add(a.Name, "cannot read source: %v", err)
		return
	}
	if !bytes.Equal(got, want) {
		rep.add(a.Name, "content differs from source (%d bytes embedded, %d on disk)", len(got), len(want))
	}
}
