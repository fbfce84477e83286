package cmd

import (
	"io"
	"log/slog"

	"github.com/dendrascience/webfilegen/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the webfilegen CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "webfilegen",
		Short: "webfilegen - Embed static web files into a C header for ESP32 web servers",
		Long: `webfilegen packs a directory of static web files (HTML, CSS, JS, SVG) into a
single C header for an ESP32 AsyncWebServer firmware.

Every file is gzip-compressed and stored as a PROGMEM byte array, and a
WEBSERVER_CALLBACK macro registers a GET route for each of them.

Use subcommands to perform different operations:
  - generate: Build the header from the source directory
  - verify: Check an existing header against the source directory`,
		Version: version.GetFullVersion(),
	}

	groupBuild := "build"
	groupCheck := "check"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupBuild,
		Title: "Build Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupCheck,
		Title: "Check Commands",
	})

	generateCmd := NewGenerateCmd()
	verifyCmd := NewVerifyCmd()

	generateCmd.GroupID = groupBuild
	verifyCmd.GroupID = groupCheck

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	lo := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		lo.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, lo))
}
