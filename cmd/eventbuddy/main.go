package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"eventbuddy/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	app := &cli.App{
		Name:  "eventbuddy",
		Usage: "Plan events, participants and tags behind a JSON API.",
		Commands: []*cli.Command{
			serveCommand(cfg, logger),
			exportCommand(cfg, logger),
			tokenCommand(cfg),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}
