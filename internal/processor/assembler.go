package processor

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"time"

	"github.com/melody-ding/go-sepia/internal/types"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// VideoCodec describes the encoder used for the silent output video
type VideoCodec struct {
	Encoder string // ffmpeg encoder name
	FourCC  string // container tag
	PixFmt  string
}

// MP4V is MPEG-4 Part 2 tagged "mp4v" in an MP4 container
var MP4V = VideoCodec{Encoder: "mpeg4", FourCC: "mp4v", PixFmt: "yuv420p"}

// Assembler encodes numbered frames back into a silent video
type Assembler struct {
	ffmpegPath string
	prober     *Prober
	codec      VideoCodec
	logger     *zap.Logger
}

func NewAssembler(ffmpegPath string, prober *Prober, codec VideoCodec, logger *zap.Logger) *Assembler {
	return &Assembler{ffmpegPath: ffmpegPath, prober: prober, codec: codec, logger: logger}
}

// Assemble writes frames 0..count-1 from framesDir into outputPath at the
// frame rate of videoPath. Frame sizes are checked before encoding starts.
func (a *Assembler) Assemble(ctx context.Context, framesDir string, count int, videoPath, outputPath string) error {
	start := time.Now()

	info, err := a.prober.Probe(ctx, videoPath)
	if err != nil {
		return err
	}

	width, height, err := ValidateFrames(framesDir, count)
	if err != nil {
		return err
	}

	stream := ffmpeg.Input(filepath.Join(framesDir, types.FramePattern), ffmpeg.KwArgs{
		"framerate":    info.FrameRate.String(),
		"start_number": 0,
	}).
		Output(outputPath, ffmpeg.KwArgs{
			"c:v":      a.codec.Encoder,
			"tag:v":    a.codec.FourCC,
			"vf":       ComposeTransforms(FormatTransform{PixFmt: a.codec.PixFmt}),
			"q:v":      2,
			"frames:v": count,
		}).
		OverWriteOutput()

	output, err := runFFmpeg(ctx, a.ffmpegPath, stream, a.logger)
	if err != nil {
		os.Remove(outputPath)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %w, output: %s", ErrWriterInit, outputPath, err, string(output))
	}

	a.logger.Info("video assembled",
		zap.String("output", outputPath),
		zap.Int("frames", count),
		zap.String("frame_rate", info.FrameRate.String()),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// ValidateFrames checks that frames 0..count-1 exist and share frame 0's
// dimensions, which it returns. Only image headers are decoded.
func ValidateFrames(dir string, count int) (width, height int, err error) {
	if count <= 0 {
		return 0, 0, fmt.Errorf("%w: frame 0: no frames to assemble", ErrMissingFrame)
	}

	for i := 0; i < count; i++ {
		cfg, err := frameConfig(types.FramePath(dir, i))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: frame %d: %w", ErrMissingFrame, i, err)
		}
		if i == 0 {
			width, height = cfg.Width, cfg.Height
			continue
		}
		if cfg.Width != width || cfg.Height != height {
			return 0, 0, fmt.Errorf("%w: frame %d is %dx%d, frame 0 is %dx%d",
				ErrFrameDimensions, i, cfg.Width, cfg.Height, width, height)
		}
	}
	return width, height, nil
}

func frameConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	return cfg, err
}
