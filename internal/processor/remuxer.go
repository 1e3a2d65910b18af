package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// DefaultAudioCodec is the encoder used for the reattached audio stream
const DefaultAudioCodec = "aac"

const finalSuffix = "_final"

// FinalPath derives the remuxed output path from the silent video path:
// "out.mp4" becomes "out_final.mp4".
func FinalPath(silentPath string) string {
	ext := filepath.Ext(silentPath)
	if ext == "" {
		return silentPath + finalSuffix + ".mp4"
	}
	return strings.TrimSuffix(silentPath, ext) + finalSuffix + ext
}

// Remuxer combines the original audio with the sepia video stream
type Remuxer struct {
	ffmpegPath string
	audioCodec string
	logger     *zap.Logger
}

func NewRemuxer(ffmpegPath, audioCodec string, logger *zap.Logger) *Remuxer {
	if audioCodec == "" {
		audioCodec = DefaultAudioCodec
	}
	return &Remuxer{ffmpegPath: ffmpegPath, audioCodec: audioCodec, logger: logger}
}

// stream maps the first audio track of the original and the first video
// track of the silent assembly into finalPath
func (r *Remuxer) stream(originalPath, silentPath, finalPath string) *ffmpeg.Stream {
	original := ffmpeg.Input(originalPath)
	silent := ffmpeg.Input(silentPath)
	return ffmpeg.Output([]*ffmpeg.Stream{original.Get("a:0"), silent.Get("v:0")}, finalPath, ffmpeg.KwArgs{
		"c:v": "copy",
		"c:a": r.audioCodec,
	}).
		OverWriteOutput()
}

// Remux takes the audio of originalPath and the video of silentPath and writes
// them to FinalPath(silentPath). The video stream is copied, the audio is
// re-encoded. The returned path is not checked for existence.
func (r *Remuxer) Remux(ctx context.Context, originalPath, silentPath string) (string, error) {
	start := time.Now()
	finalPath := FinalPath(silentPath)

	output, err := runFFmpeg(ctx, r.ffmpegPath, r.stream(originalPath, silentPath, finalPath), r.logger)
	if err != nil {
		if rmErr := os.Remove(finalPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			r.logger.Warn("could not remove partial output", zap.String("path", finalPath), zap.Error(rmErr))
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &RemuxError{ExitCode: exitCode(err), Output: string(output)}
	}

	r.logger.Info("audio remuxed",
		zap.String("output", finalPath),
		zap.String("audio_codec", r.audioCodec),
		zap.Duration("elapsed", time.Since(start)),
	)
	return finalPath, nil
}
