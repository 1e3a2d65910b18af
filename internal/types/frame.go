package types

import (
	"fmt"
	"path/filepath"
)

// FramePattern is the ffmpeg image2 pattern matching FrameName
const FramePattern = "frame_%04d.jpg"

// FrameName returns the file name of the frame at index
func FrameName(index int) string {
	return fmt.Sprintf(FramePattern, index)
}

// FramePath returns the path of the frame at index inside dir
func FramePath(dir string, index int) string {
	return filepath.Join(dir, FrameName(index))
}
