package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"sanctuary/internal/app"
	"sanctuary/internal/config"
	"sanctuary/internal/logger"
	"sanctuary/internal/service"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "-", "file with one YouTube link per line, - for stdin")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Get().Info("Ingest starting up...", zap.String("file", *file))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Get().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer comps.Close()

	var input io.Reader = os.Stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			logger.Get().Fatal("Failed to open ingest file", zap.Error(err))
		}
		defer f.Close()
		input = f
	}

	summary, err := service.NewIngestService(comps.Verification, logger.Get()).Ingest(ctx, input)
	if summary != nil {
		for _, o := range summary.Outcomes {
			switch {
			case o.Err != nil:
				fmt.Printf("%4d  FAILED    %s  %v\n", o.Line, o.Input, o.Err)
			case o.CacheHit:
				fmt.Printf("%4d  LIBRARY   %s\n", o.Line, o.VideoID)
			default:
				fmt.Printf("%4d  ARCHIVED  %s\n", o.Line, o.VideoID)
			}
		}
		fmt.Printf("archived=%d library=%d failed=%d\n", summary.Archived, summary.CacheHit, summary.Failed)
	}
	if err != nil {
		logger.Get().Error("Ingest stopped early", zap.Error(err))
		os.Exit(1)
	}
}
