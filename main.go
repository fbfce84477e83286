package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/webfilegen/internal/cmd"
	"github.com/dendrascience/webfilegen/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, cmd.NewRootCmd(), fang.WithVersion(version.GetFullVersion())); err != nil {
		stop()
		os.Exit(1)
	}
}
