package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bienestar/internal/buildinfo"
	"github.com/dmitrijs2005/bienestar/internal/devserver"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := devserver.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	srv, err := devserver.NewServer(cfg, logging.NewJSONLogger(os.Stdout, cfg.LogLevel))
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := srv.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
