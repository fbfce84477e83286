package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dendrascience/webfilegen/internal/config"
	"github.com/dendrascience/webfilegen/webfiles"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates and returns the generate subcommand for the webfilegen CLI.
// It converts the source directory into the header, or prints the plan with --dry-run.
func NewGenerateCmd() *cobra.Command {
	var (
		opts    configOptions
		verbose bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the web files header",
		Long: `Compress every file in the source directory and write them, together with
the WEBSERVER_CALLBACK route macro, into a single C header.

Hidden files are ignored. The header is written to a temporary file first and
only replaces the existing header once every file has been converted.

Settings are read from the config file, then WEBFILEGEN_* environment
variables (a .env file is loaded when present), then command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), verbose)
			return runGenerate(cmd.Context(), cfg, cmd.OutOrStdout(), log, verbose, dryRun)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")

	return cmd
}

func runGenerate(ctx context.Context, cfg config.Config, out io.Writer, log *slog.Logger, verbose, dryRun bool) error {
	g, err := webfiles.NewGenerator(cfg, out, log)
	if err != nil {
		return err
	}

	if dryRun {
		assets, err := g.Plan()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Files that would be embedded into %s:\n", cfg.OutputPath)
		for _, a := range assets {
			fmt.Fprintf(out, "  %s -> %s (%s, %s, %d)\n", a.Name, a.Route(), a.Symbol, a.MIME, a.Status)
		}
		return nil
	}

	if verbose {
		fmt.Fprintf(out, "Converting %s into %s (gzip level %d)\n", cfg.SourceDir, cfg.OutputPath, cfg.CompressionLevel)
	}

	res, err := g.Generate(ctx)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(out, "Generation complete!\n")
		fmt.Fprintf(out, "  Files: %d\n", res.Assets)
		fmt.Fprintf(out, "  Uncompressed size: %d bytes\n", res.OriginalBytes)
		fmt.Fprintf(out, "  Compressed size: %d bytes\n", res.CompressedBytes)
		fmt.Fprintf(out, "  Header: %s\n", res.OutputPath)
	}

	return nil
}
