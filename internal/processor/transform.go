package processor

import "strings"

// Transform represents a video filter that is passed to ffmpeg via -vf
type Transform interface {
	// FFmpegArgs returns the ffmpeg filter expressions for this transformation
	FFmpegArgs() []string
}

// FormatTransform converts frames to a pixel format the encoder accepts
type FormatTransform struct {
	PixFmt string
}

func (t FormatTransform) FFmpegArgs() []string {
	return []string{"format=" + t.PixFmt}
}

// ComposeTransforms combines multiple transformations into one filter graph
func ComposeTransforms(transforms ...Transform) string {
	var args []string
	for _, t := range transforms {
		args = append(args, t.FFmpegArgs()...)
	}
	return strings.Join(args, ",")
}
