package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/notesapp/internal/client/api"
	"github.com/dmitrijs2005/notesapp/internal/client/cli"
	"github.com/dmitrijs2005/notesapp/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client := api.NewClient(cfg.ServerURL, cfg.RequestTimeout)
	app := cli.NewApp(client, os.Stdin, int(os.Stdin.Fd()), os.Stdout, os.Stderr)

	if err := app.Run(ctx, config.CommandArgs()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
