package processor

import (
	"context"
	"errors"
	"os/exec"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// DefaultFFmpegPath is used when no ffmpeg binary is configured
const DefaultFFmpegPath = "ffmpeg"

// processWaitDelay bounds how long a killed process may hold its output pipes open
const processWaitDelay = 2 * time.Second

// runFFmpeg runs the compiled stream as a discrete argument list, never through a shell
func runFFmpeg(ctx context.Context, binary string, stream *ffmpeg.Stream, logger *zap.Logger) ([]byte, error) {
	if binary == "" {
		binary = DefaultFFmpegPath
	}
	args := stream.GetArgs()
	logger.Debug("executing ffmpeg", zap.String("binary", binary), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.WaitDelay = processWaitDelay
	return cmd.CombinedOutput()
}

// exitCode returns the process exit status of err, or -1 if it did not exit normally
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
