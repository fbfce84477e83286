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

// NewVerifyCmd creates and returns the verify subcommand for the webfilegen CLI.
// It checks that a generated header still matches its source directory.
func NewVerifyCmd() *cobra.Command {
	var (
		opts    configOptions
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a generated header against the source directory",
		Long: `Check that a generated header is up to date.

Every file in the source directory must have a route with the expected status
and MIME type, and a byte array that decompresses to exactly the file's
current content. Routes or arrays for files that no longer exist are reported
too. The command exits with a non-zero status when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), verbose)
			return runVerify(cmd.Context(), cfg, cmd.OutOrStdout(), log, verbose)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runVerify(ctx context.Context, cfg config.Config, out io.Writer, log *slog.Logger, verbose bool) error {
	if verbose {
		fmt.Fprintf(out, "Verifying %s against %s\n", cfg.OutputPath, cfg.SourceDir)
	}

	g, err := webfiles.NewGenerator(cfg, out, log)
	if err != nil {
		return err
	}

	rep, err := g.Verify(ctx)
	if err != nil {
		return err
	}

	if !rep.OK() {
		fmt.Fprintf(out, "Header %s has %d problems:\n", cfg.OutputPath, len(rep.Problems))
		for _, p := range rep.Problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}

	fmt.Fprintf(out, "\nVerification complete:\n")
	fmt.Fprintf(out, "  Files checked: %d\n", rep.Checked)
	fmt.Fprintf(out, "  Total problems: %d\n", len(rep.Problems))

	if !rep.OK() {
		return fmt.Errorf("header %s is out of date", cfg.OutputPath)
	}
	return nil
}
