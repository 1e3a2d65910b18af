package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/melody-ding/go-sepia/internal/config"
	"github.com/melody-ding/go-sepia/internal/logger"
	"github.com/melody-ding/go-sepia/internal/processor"
	"github.com/melody-ding/go-sepia/internal/publish"
	"github.com/melody-ding/go-sepia/internal/sepia"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var publisher processor.Publisher
	if cfg.S3Bucket != "" {
		s3pub, err := publish.NewS3Publisher(publish.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Prefix:   cfg.S3Prefix,
			Endpoint: cfg.S3Endpoint,
		}, log)
		if err != nil {
			log.Error("create s3 publisher", zap.Error(err))
			os.Exit(1)
		}
		publisher = s3pub
	}

	prober := processor.NewProber(cfg.FFprobePath)
	pipeline := processor.NewPipeline(
		processor.NewExtractor(cfg.FFmpegPath, prober, cfg.JPEGQuality, log),
		sepia.NewFilter(sepia.SepiaKernel, log),
		processor.NewAssembler(cfg.FFmpegPath, prober, processor.MP4V, log),
		processor.NewRemuxer(cfg.FFmpegPath, cfg.AudioCodec, log),
		publisher,
		log,
		processor.PipelineConfig{
			TempDir:    cfg.TempDir,
			KeepFrames: cfg.KeepFrames,
		},
	)

	finalPath, err := pipeline.Process(ctx, cfg.InputPath, cfg.OutputPath)
	if err != nil {
		log.Error("processing failed", zap.String("input", cfg.InputPath), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}

	fmt.Println(finalPath)
}
