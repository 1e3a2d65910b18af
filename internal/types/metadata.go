package types

import (
	"fmt"
	"strconv"
	"strings"
)

// FrameRate is a rational frame rate as reported by ffprobe (e.g. 30000/1001)
type FrameRate struct {
	Num int `json:"num"`
	Den int `json:"den"`
}

// ParseFrameRate parses "N/D" or a plain decimal such as "25" or "29.97"
func ParseFrameRate(s string) (FrameRate, error) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.Atoi(num)
		if err != nil {
			return FrameRate{}, fmt.Errorf("invalid frame rate numerator: %s", num)
		}
		d, err := strconv.Atoi(den)
		if err != nil {
			return FrameRate{}, fmt.Errorf("invalid frame rate denominator: %s", den)
		}
		if n <= 0 || d <= 0 {
			return FrameRate{}, fmt.Errorf("invalid frame rate: %s", s)
		}
		return FrameRate{Num: n, Den: d}, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return FrameRate{}, fmt.Errorf("invalid frame rate: %s", s)
	}
	// three decimal places is enough for NTSC-style rates
	return FrameRate{Num: int(f*1000 + 0.5), Den: 1000}, nil
}

// FPS returns the frame rate as frames per second
func (r FrameRate) FPS() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// String returns the rational form understood by ffmpeg's -framerate
func (r FrameRate) String() string {
	if r.Den == 1 {
		return strconv.Itoa(r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// VideoInfo represents the probed metadata of a video file
type VideoInfo struct {
	Path         string    `json:"path"`
	FrameRate    FrameRate `json:"frame_rate"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	FrameCount   int       `json:"frame_count,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	VideoCodec   string    `json:"video_codec"`
	AudioCodec   string    `json:"audio_codec,omitempty"`
	AudioStreams int       `json:"audio_streams"`
	HasAudio     bool      `json:"has_audio"`
}
