package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FrameExtractor decodes a video into numbered frames and returns the count
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, videoPath, outputDir string) (int, error)
}

// FrameFilter rewrites numbered frames in place
type FrameFilter interface {
	Apply(ctx context.Context, dir string, count int) error
}

// VideoAssembler encodes numbered frames into a silent video
type VideoAssembler interface {
	Assemble(ctx context.Context, framesDir string, count int, videoPath, outputPath string) error
}

// AudioRemuxer attaches the original audio and returns the final path
type AudioRemuxer interface {
	Remux(ctx context.Context, originalPath, silentPath string) (string, error)
}

// Publisher ships the final video somewhere and returns its location
type Publisher interface {
	Publish(ctx context.Context, localPath string) (string, error)
}

type PipelineConfig struct {
	TempDir    string
	KeepFrames bool
}

// Pipeline runs extract, sepia, assemble and remux in sequence.
// Any stage failure aborts the run and is returned unchanged.
type Pipeline struct {
	extractor FrameExtractor
	filter    FrameFilter
	assembler VideoAssembler
	remuxer   AudioRemuxer
	publisher Publisher
	logger    *zap.Logger
	cfg       PipelineConfig
}

// NewPipeline wires the stages together. publisher may be nil.
func NewPipeline(
	extractor FrameExtractor,
	filter FrameFilter,
	assembler VideoAssembler,
	remuxer AudioRemuxer,
	publisher Publisher,
	logger *zap.Logger,
	cfg PipelineConfig,
) *Pipeline {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Pipeline{
		extractor: extractor,
		filter:    filter,
		assembler: assembler,
		remuxer:   remuxer,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// Process converts videoPath to sepia. The silent video is written to
// outputPath and the returned path is the remuxed "_final" variant.
// Intermediate frames live in a per-run directory under TempDir that is
// removed when Process returns, unless KeepFrames is set.
func (p *Pipeline) Process(ctx context.Context, videoPath, outputPath string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOpenVideo, videoPath, err)
	}

	workDir := filepath.Join(p.cfg.TempDir, uuid.NewString())
	framesDir := filepath.Join(workDir, "frames")
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return "", fmt.Errorf("create frames dir: %w", err)
	}
	log := p.logger.With(zap.String("video", videoPath), zap.String("work_dir", workDir))

	if p.cfg.KeepFrames {
		log.Info("keeping intermediate frames", zap.String("frames_dir", framesDir))
	} else {
		defer func() {
			if err := os.RemoveAll(workDir); err != nil {
				log.Warn("could not remove work dir", zap.Error(err))
			}
		}()
	}

	return p.Run(ctx, videoPath, framesDir, outputPath)
}

// Run executes the stages using a caller-owned, existing frames directory.
// The directory is left in place.
func (p *Pipeline) Run(ctx context.Context, videoPath, framesDir, outputPath string) (string, error) {
	start := time.Now()
	log := p.logger.With(zap.String("video", videoPath))

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	count, err := p.extractor.ExtractFrames(ctx, videoPath, framesDir)
	if err != nil {
		log.Error("frame extraction failed", zap.Error(err))
		return "", fmt.Errorf("extract frames: %w", err)
	}

	if err := p.filter.Apply(ctx, framesDir, count); err != nil {
		log.Error("sepia filter failed", zap.Error(err))
		return "", fmt.Errorf("apply sepia: %w", err)
	}

	if err := p.assembler.Assemble(ctx, framesDir, count, videoPath, outputPath); err != nil {
		log.Error("assembly failed", zap.Error(err))
		return "", fmt.Errorf("assemble video: %w", err)
	}

	finalPath, err := p.remuxer.Remux(ctx, videoPath, outputPath)
	if err != nil {
		log.Error("remux failed", zap.Error(err))
		return "", fmt.Errorf("remux audio: %w", err)
	}

	if p.publisher != nil {
		location, err := p.publisher.Publish(ctx, finalPath)
		if err != nil {
			log.Error("publish failed", zap.Error(err))
			return "", fmt.Errorf("publish: %w", err)
		}
		log.Info("video published", zap.String("location", location))
	}

	log.Info("video processed",
		zap.String("output", finalPath),
		zap.Int("frames", count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return finalPath, nil
}
