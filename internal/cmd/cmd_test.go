package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/webfilegen/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvSourceDir, config.EnvOutputPath, config.EnvCompressionLevel, config.EnvExtensionMode} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeSite(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body>hello</body></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error404.html"), []byte("<h1>404</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitkeep"), nil, 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfgFile := filepath.Join(dir, "webfilegen.yaml")
	yaml := "source_dir: from-file\noutput_path: file.h\ncompression_level: 3\nextension_mode: last\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(yaml), 0o644))
	t.Setenv(config.EnvOutputPath, "env.h")

	var opts configOptions
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	opts.addFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", cfgFile,
		"--env-file", filepath.Join(dir, ".env"),
		"--level", "5",
	}))

	cfg, err := opts.resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, config.Config{
		SourceDir:        "from-file",
		OutputPath:       "env.h",
		CompressionLevel: 5,
		ExtensionMode:    config.ExtensionLast,
	}, cfg)
}

func TestResolve_InvalidFlag(t *testing.T) {
	clearEnv(t)

	var opts configOptions
	cmd := &cobra.Command{Use: "test"}
	opts.addFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", "",
		"--env-file", "",
		"--extension-mode", "middle",
	}))

	_, err := opts.resolve(cmd)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestGenerateThenVerify(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	web := filepath.Join(dir, "web")
	header := filepath.Join(dir, "src", "webfiles.h")
	writeSite(t, web)

	common := []string{"--config", "", "--env-file", "", "--source", web, "--output", header}

	out, err := execute(t, append([]string{"generate"}, common...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Converting index.html...(31 -> ")
	require.Contains(t, out, "Converting error404.html...(12 -> ")
	require.NotContains(t, out, ".gitkeep")

	content, err := os.ReadFile(header)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(content), "#pragma once\n\n#define WEBSERVER_CALLBACK \\\n"))
	require.Contains(t, string(content), `reply(request, 404, "text/html", error404_html, sizeof(error404_html));`)

	out, err = execute(t, append([]string{"verify"}, common...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Files checked: 2")
	require.Contains(t, out, "Total problems: 0")

	require.NoError(t, os.WriteFile(filepath.Join(web, "index.html"), []byte("<html>changed</html>"), 0o644))

	out, err = execute(t, append([]string{"verify"}, common...)...)
	require.Error(t, err)
	require.Contains(t, out, "index.html: content differs from source")
}

func TestGenerate_DryRun(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	web := filepath.Join(dir, "web")
	header := filepath.Join(dir, "webfiles.h")
	writeSite(t, web)

	out, err := execute(t, "generate", "--config", "", "--env-file", "", "-s", web, "-o", header, "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "index.html -> /index.html (index_html, text/html, 200)")
	require.Contains(t, out, "error404.html -> /error404.html (error404_html, text/html, 404)")

	_, err = os.Stat(header)
	require.True(t, os.IsNotExist(err), "dry run must not write the header")
}

func TestGenerate_MissingSource(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := execute(t, "generate", "--config", "", "--env-file", "",
		"-s", filepath.Join(dir, "missing"), "-o", filepath.Join(dir, "webfiles.h"))
	require.Error(t, err)
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.Subset(t, names, []string{"generate", "verify"})
}
