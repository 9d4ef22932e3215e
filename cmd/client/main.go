package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/accountcli/internal/client/cli"
	"github.com/dmitrijs2005/accountcli/internal/client/config"
	"github.com/dmitrijs2005/accountcli/internal/logging"
)

func main() {

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		os.Exit(1)
	}

	app.Run(context.Background())

}
