package webfiles

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dendrascience/webfilegen/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func generateFixture(t *testing.T, files map[string]string) (afero.Fs, *Generator) {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeAssets(t, fs, "web", files)
	g := newTestGenerator(t, fs, testConfig(), &bytes.Buffer{})
	_, err := g.Generate(context.Background())
	require.NoError(t, err)
	return fs, g
}

func problemAssets(rep Report) []string {
	var names []string
	for _, p := range rep.Problems {
		names = append(names, p.Asset)
	}
	return names
}

func TestParseHeader(t *testing.T) {
	a := Asset{Name: "index.html", Symbol: "index_html", MIME: "text/html", Status: 200}
	b := Asset{Name: "error404.html", Symbol: "error404_html", MIME: "text/html", Status: 404}
	content := Preamble + MacroOpening() + HandlerSnippet(a) + HandlerSnippet(b) + BlockSeparator +
		ArrayDeclaration(a.Symbol, []byte{0x1f, 0x8b, 0x0}) +
		ArrayDeclaration(b.Symbol, []byte{0xff})

	h, err := ParseHeader([]byte(content))
	require.NoError(t, err)

	require.Equal(t, []Route{
		{Name: "index.html", Status: 200, MIME: "text/html", Symbol: "index_html"},
		{Name: "error404.html", Status: 404, MIME: "text/html", Symbol: "error404_html"},
	}, h.Routes)
	require.Equal(t, []string{"index_html", "error404_html"}, h.Symbols)
	require.Equal(t, []byte{0x1f, 0x8b, 0x0}, h.Arrays["index_html"])
	require.Equal(t, []byte{0xff}, h.Arrays["error404_html"])
}

func TestParseHeader_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no preamble", "const uint8_t a[] PROGMEM = { 0x1 };\n\n"},
		{"bad hex", Preamble + MacroOpening() + BlockSeparator + "const uint8_t a[] PROGMEM = { 0x1,zz };\n\n"},
		{"byte overflow", Preamble + MacroOpening() + BlockSeparator + "const uint8_t a[] PROGMEM = { 0x100 };\n\n"},
		{"sizeof mismatch", Preamble + MacroOpening() +
			"\\\nserver.on(\"/a.js\", HTTP_GET, [](AsyncWebServerRequest* request) {\\\n\treply(request, 200, \"application/javascript\", a_js, sizeof(b_js));\\\n});"},
		{"duplicate array", Preamble + MacroOpening() + BlockSeparator + ArrayDeclaration("a", []byte{1}) + ArrayDeclaration("a", []byte{2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader([]byte(tt.content))
			require.True(t, errors.Is(err, ErrMalformedHeader), "error %v should wrap ErrMalformedHeader", err)
		})
	}
}

func TestVerify_Clean(t *testing.T) {
	_, g := generateFixture(t, map[string]string{
		"index.html":    "<html></html>",
		"style.css":     "a{}",
		"error404.html": "gone",
	})

	rep, err := g.Verify(context.Background())
	require.NoError(t, err)
	require.True(t, rep.OK(), "unexpected problems: %v", rep.Problems)
	require.Equal(t, 3, rep.Checked)
}

func TestVerify_NamesWithSpacesAndPunctuation(t *testing.T) {
	_, g := generateFixture(t, map[string]string{
		"my page.html": "<p>spaced</p>",
		"a,b (1).css":  "p{}",
		"logo-v2.svg":  "<svg/>",
	})

	rep, err := g.Verify(context.Background())
	require.NoError(t, err)
	require.True(t, rep.OK(), "unexpected problems: %v", rep.Problems)
	require.Equal(t, 3, rep.Checked)
}

func TestVerify_ChangedContent(t *testing.T) {
	fs, g := generateFixture(t, map[string]string{"index.html": "<html>v1</html>"})
	require.NoError(t, afero.WriteFile(fs, "web/index.html", []byte("<html>v2</html>"), 0o644))

	rep, err := g.Verify(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"index.html"}, problemAssets(rep))
	require.Contains(t, rep.Problems[0].Reason, "content differs")
}

func TestVerify_NewAsset(t *testing.T) {
	fs, g := generateFixture(t, map[string]string{"index.html": "<html></html>"})
	require.NoError(t, afero.WriteFile(fs, "web/app.js", []byte("x()"), 0o644))

	rep, err := g.Verify(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Problems, 2)
	require.Equal(t, []string{"app.js", "app.js"}, problemAssets(rep))
}

func TestVerify_RemovedAsset(t *testing.T) {
	fs, g := generateFixture(t, map[string]string{
		"index.html": "<html></html>",
		"old.css":    "p{}",
	})
	require.NoError(t, fs.Remove("web/old.css"))

	rep, err := g.Verify(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"old.css", "old_css"}, problemAssets(rep))
}

func TestVerify_ExtensionModeChanged(t *testing.T) {
	fs, _ := generateFixture(t, map[string]string{"app.min.js": "x()"})

	cfg := testConfig()
	cfg.ExtensionMode = config.ExtensionLast
	g := newTestGenerator(t, fs, cfg, &bytes.Buffer{})

	rep, err := g.Verify(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Problems, 1)
	require.True(t, strings.HasPrefix(rep.Problems[0].String(), "app.min.js: route MIME type text/plain"))
}

func TestVerify_MissingHeader(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAssets(t, fs, "web", map[string]string{"index.html": "x"})

	_, err := newTestGenerator(t, fs, testConfig(), &bytes.Buffer{}).Verify(context.Background())
	require.True(t, errors.Is(err, ErrFileSystem), "error %v should wrap ErrFileSystem", err)
}
