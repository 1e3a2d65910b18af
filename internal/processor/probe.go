package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/melody-ding/go-sepia/internal/types"
)

// DefaultFFprobePath is used when no ffprobe binary is configured
const DefaultFFprobePath = "ffprobe"

var (
	videoStreamExpr  = jmespath.MustCompile("streams[?codec_type=='video'] | [0]")
	audioCodecExpr   = jmespath.MustCompile("streams[?codec_type=='audio'] | [0].codec_name")
	audioStreamsExpr = jmespath.MustCompile("length(streams[?codec_type=='audio'])")
	durationExpr     = jmespath.MustCompile("format.duration")
)

// Prober reads video metadata with ffprobe
type Prober struct {
	ffprobePath string
}

func NewProber(ffprobePath string) *Prober {
	if ffprobePath == "" {
		ffprobePath = DefaultFFprobePath
	}
	return &Prober{ffprobePath: ffprobePath}
}

// ProbeVideo probes path with the ffprobe found in PATH
func ProbeVideo(ctx context.Context, path string) (types.VideoInfo, error) {
	return NewProber(DefaultFFprobePath).Probe(ctx, path)
}

// Probe reads stream metadata of the video at path. The ffprobe process is
// killed when ctx is done. Any failure to open or interpret the file is
// reported as ErrOpenVideo.
func (p *Prober) Probe(ctx context.Context, path string) (types.VideoInfo, error) {
	if err := ctx.Err(); err != nil {
		return types.VideoInfo{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return types.VideoInfo{}, fmt.Errorf("%w: %s: %w", ErrOpenVideo, path, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.ffprobePath, "-show_format", "-show_streams", "-of", "json", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = processWaitDelay
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return types.VideoInfo{}, ctx.Err()
		}
		return types.VideoInfo{}, fmt.Errorf("%w: %s: ffprobe: %w: %s", ErrOpenVideo, path, err, strings.TrimSpace(stderr.String()))
	}
	info, err := parseProbe(stdout.String())
	if err != nil {
		return types.VideoInfo{}, fmt.Errorf("%w: %s: %w", ErrOpenVideo, path, err)
	}
	info.Path = path
	return info, nil
}

// parseProbe extracts VideoInfo from ffprobe's JSON document
func parseProbe(raw string) (types.VideoInfo, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return types.VideoInfo{}, fmt.Errorf("decode probe output: %w", err)
	}

	stream, err := videoStreamExpr.Search(doc)
	if err != nil {
		return types.VideoInfo{}, fmt.Errorf("search video stream: %w", err)
	}
	if stream == nil {
		return types.VideoInfo{}, fmt.Errorf("no video stream")
	}

	rate, err := types.ParseFrameRate(searchString(stream, "r_frame_rate"))
	if err != nil {
		// some containers only report an average rate
		rate, err = types.ParseFrameRate(searchString(stream, "avg_frame_rate"))
		if err != nil {
			return types.VideoInfo{}, err
		}
	}

	info := types.VideoInfo{
		FrameRate:  rate,
		Width:      searchInt(stream, "width"),
		Height:     searchInt(stream, "height"),
		FrameCount: searchInt(stream, "nb_frames"),
		VideoCodec: searchString(stream, "codec_name"),
	}

	if codec, err := audioCodecExpr.Search(doc); err == nil {
		if s, ok := codec.(string); ok {
			info.AudioCodec = s
			info.HasAudio = true
		}
	}
	if n, err := audioStreamsExpr.Search(doc); err == nil {
		if f, ok := n.(float64); ok {
			info.AudioStreams = int(f)
		}
	}
	if d, err := durationExpr.Search(doc); err == nil {
		if s, ok := d.(string); ok {
			info.Duration, _ = strconv.ParseFloat(s, 64)
		}
	}

	return info, nil
}

func searchString(data interface{}, expr string) string {
	v, err := jmespath.Search(expr, data)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// searchInt accepts both JSON numbers and numeric strings (ffprobe emits nb_frames as a string)
func searchInt(data interface{}, expr string) int {
	v, err := jmespath.Search(expr, data)
	if err != nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
