package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VID2SEPIA_TEMP_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.FFprobePath)
	assert.Equal(t, 2, cfg.JPEGQuality)
	assert.Equal(t, "aac", cfg.AudioCodec)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.TempDir)
	assert.False(t, cfg.KeepFrames)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VID2SEPIA_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("VID2SEPIA_FFPROBE", "/opt/ffmpeg/bin/ffprobe")
	t.Setenv("VID2SEPIA_TEMP_DIR", "/scratch")
	t.Setenv("VID2SEPIA_KEEP_FRAMES", "true")
	t.Setenv("S3_BUCKET", "videos")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "/opt/ffmpeg/bin/ffprobe", cfg.FFprobePath)
	assert.Equal(t, "/scratch", cfg.TempDir)
	assert.True(t, cfg.KeepFrames)
	assert.Equal(t, "videos", cfg.S3Bucket)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("VID2SEPIA_FFMPEG", "/env/ffmpeg")

	cfg, err := Load()
	require.NoError(t, err)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-in", "in.mp4", "-out", "out/sepia.mp4", "-ffmpeg", "/flag/ffmpeg", "-ffprobe", "/flag/ffprobe"}))

	assert.Equal(t, "in.mp4", cfg.InputPath)
	assert.Equal(t, "out/sepia.mp4", cfg.OutputPath)
	assert.Equal(t, "/flag/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "/flag/ffprobe", cfg.FFprobePath)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{InputPath: "a.mp4", OutputPath: "b.mp4", JPEGQuality: 2},
		},
		{
			name:    "missing input",
			cfg:     Config{OutputPath: "b.mp4", JPEGQuality: 2},
			wantErr: true,
		},
		{
			name:    "missing output",
			cfg:     Config{InputPath: "a.mp4", JPEGQuality: 2},
			wantErr: true,
		},
		{
			name:    "quality out of range",
			cfg:     Config{InputPath: "a.mp4", OutputPath: "b.mp4", JPEGQuality: 40},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
