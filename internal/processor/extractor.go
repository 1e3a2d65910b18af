package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/melody-ding/go-sepia/internal/types"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// DefaultJPEGQuality is the ffmpeg -q:v scale value for extracted frames (2 is near lossless, 31 is worst)
const DefaultJPEGQuality = 2

// Extractor decodes a video into numbered JPEG stills
type Extractor struct {
	ffmpegPath string
	prober     *Prober
	quality    int
	logger     *zap.Logger
}

func NewExtractor(ffmpegPath string, prober *Prober, quality int, logger *zap.Logger) *Extractor {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return &Extractor{ffmpegPath: ffmpegPath, prober: prober, quality: quality, logger: logger}
}

// ExtractFrames writes every frame of videoPath into outputDir as frame_NNNN.jpg,
// starting at index 0, and returns the number of frames written.
// outputDir must already exist; frame files left in it by an earlier run are
// removed before decoding.
func (e *Extractor) ExtractFrames(ctx context.Context, videoPath string, outputDir string) (int, error) {
	start := time.Now()

	if _, err := e.prober.Probe(ctx, videoPath); err != nil {
		return 0, err
	}

	fi, err := os.Stat(outputDir)
	if err != nil {
		return 0, fmt.Errorf("frames dir: %w", err)
	}
	if !fi.IsDir() {
		return 0, fmt.Errorf("frames dir: %s is not a directory", outputDir)
	}

	stale, err := clearFrames(outputDir)
	if err != nil {
		return 0, fmt.Errorf("frames dir: %w", err)
	}
	if stale > 0 {
		e.logger.Warn("removed stale frames", zap.String("dir", outputDir), zap.Int("count", stale))
	}

	stream := ffmpeg.Input(videoPath).
		Output(filepath.Join(outputDir, types.FramePattern), ffmpeg.KwArgs{
			"start_number": 0,
			"vsync":        "passthrough",
			"q:v":          e.quality,
		}).
		OverWriteOutput()

	output, err := runFFmpeg(ctx, e.ffmpegPath, stream, e.logger)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %s: ffmpeg decode: %w, output: %s", ErrOpenVideo, videoPath, err, string(output))
	}

	count := countFrames(outputDir)
	if count == 0 {
		return 0, fmt.Errorf("%w: %s: no frames decoded", ErrOpenVideo, videoPath)
	}

	e.logger.Info("frames extracted",
		zap.String("video", videoPath),
		zap.Int("count", count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return count, nil
}

// clearFrames deletes every frame file in dir and returns how many were removed
func clearFrames(dir string) (int, error) {
	stale, err := filepath.Glob(filepath.Join(dir, "frame_*.jpg"))
	if err != nil {
		return 0, err
	}
	for _, f := range stale {
		if err := os.Remove(f); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// countFrames counts contiguous frame files starting at index 0
func countFrames(dir string) int {
	n := 0
	for {
		if _, err := os.Stat(types.FramePath(dir, n)); err != nil {
			return n
		}
		n++
	}
}
