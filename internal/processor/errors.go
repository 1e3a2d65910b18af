package processor

import (
	"errors"
	"fmt"

	"github.com/melody-ding/go-sepia/internal/types"
)

// Sentinel errors for the sepia pipeline. Match them with errors.Is.
var (
	// ErrOpenVideo indicates the source video could not be opened or probed.
	ErrOpenVideo = errors.New("could not open video")

	// ErrMissingFrame indicates an expected frame file is absent or unreadable.
	ErrMissingFrame = types.ErrMissingFrame

	// ErrFrameDimensions indicates a frame does not match the first frame's size.
	ErrFrameDimensions = errors.New("frame dimensions differ from first frame")

	// ErrWriterInit indicates the output video could not be written.
	ErrWriterInit = errors.New("could not write output video")

	// ErrRemux indicates the audio remux process failed.
	ErrRemux = errors.New("remux failed")
)

// RemuxError carries the exit status of a failed ffmpeg remux.
type RemuxError struct {
	ExitCode int
	Output   string
}

func (e *RemuxError) Error() string {
	return fmt.Sprintf("remux failed: ffmpeg exited with status %d", e.ExitCode)
}

func (e *RemuxError) Unwrap() error {
	return ErrRemux
}
