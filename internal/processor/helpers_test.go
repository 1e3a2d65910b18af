package processor

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireFFmpeg skips the test when ffmpeg or ffprobe is not installed
func requireFFmpeg(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}
}

func runFFmpegForTest(t *testing.T, args ...string) {
	t.Helper()
	cmd := exec.Command("ffmpeg", append(args, "-y")...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg %v: %v\n%s", args, err, out)
	}
}

func colorSource(size, fps, frames int) string {
	return "color=c=red:s=" + strconv.Itoa(size) + "x" + strconv.Itoa(size) +
		":r=" + strconv.Itoa(fps) + ":d=" + strconv.Itoa(frames/fps)
}

func sineSource(seconds int, freq int) string {
	return "sine=frequency=" + strconv.Itoa(freq) + ":duration=" + strconv.Itoa(seconds)
}

// createTestVideo creates a solid color video with a sine tone using ffmpeg
func createTestVideo(t *testing.T, frames, fps, size int) string {
	t.Helper()
	requireFFmpeg(t)

	path := filepath.Join(t.TempDir(), "source.mp4")
	runFFmpegForTest(t,
		"-f", "lavfi", "-i", colorSource(size, fps, frames),
		"-f", "lavfi", "-i", sineSource(frames/fps, 440),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		path,
	)
	return path
}

// createRampVideo creates a gray video whose brightness rises with every
// frame, so each frame can be told apart by its mean color
func createRampVideo(t *testing.T, frames, fps, size int) string {
	t.Helper()
	requireFFmpeg(t)

	path := filepath.Join(t.TempDir(), "ramp.mp4")
	runFFmpegForTest(t,
		"-f", "lavfi", "-i", colorSource(size, fps, frames),
		"-f", "lavfi", "-i", sineSource(frames/fps, 440),
		"-vf", "geq=lum='20+N*20':cb=128:cr=128",
		"-c:v", "libx264",
		"-qp", "0",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		path,
	)
	return path
}

// createTwoAudioTrackVideo creates a video carrying two distinct audio tracks
func createTwoAudioTrackVideo(t *testing.T, frames, fps, size int) string {
	t.Helper()
	requireFFmpeg(t)

	seconds := frames / fps
	path := filepath.Join(t.TempDir(), "two-tracks.mp4")
	runFFmpegForTest(t,
		"-f", "lavfi", "-i", colorSource(size, fps, frames),
		"-f", "lavfi", "-i", sineSource(seconds, 440),
		"-f", "lavfi", "-i", sineSource(seconds, 880),
		"-map", "0:v", "-map", "1:a", "-map", "2:a",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		path,
	)
	return path
}

// writeScript writes an executable POSIX shell script into a temp dir
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

// frameTimes returns the presentation time in seconds of every video frame in path
func frameTimes(t *testing.T, path string) []float64 {
	t.Helper()
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "frame=best_effort_timestamp_time",
		"-of", "csv=p=0",
		path,
	).Output()
	require.NoError(t, err)

	var times []float64
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimRight(strings.TrimSpace(line), ",")
		if line == "" {
			continue
		}
		ts, err := strconv.ParseFloat(line, 64)
		require.NoError(t, err, "parse %q", line)
		times = append(times, ts)
	}
	return times
}
