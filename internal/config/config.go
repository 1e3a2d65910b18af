package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	InputPath  string `env:"VID2SEPIA_INPUT"`
	OutputPath string `env:"VID2SEPIA_OUTPUT"`

	FFmpegPath  string `env:"VID2SEPIA_FFMPEG"       envDefault:"ffmpeg"`
	FFprobePath string `env:"VID2SEPIA_FFPROBE"      envDefault:"ffprobe"`
	JPEGQuality int    `env:"VID2SEPIA_JPEG_QUALITY" envDefault:"2"`
	AudioCodec  string `env:"VID2SEPIA_AUDIO_CODEC"  envDefault:"aac"`
	TempDir     string `env:"VID2SEPIA_TEMP_DIR"`
	KeepFrames  bool   `env:"VID2SEPIA_KEEP_FRAMES"  envDefault:"false"`

	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION"   envDefault:"us-east-1"`
	S3Prefix   string `env:"S3_PREFIX"`
	S3Endpoint string `env:"S3_ENDPOINT"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.TempDir == "" {
		cfg.TempDir = filepath.Join(os.TempDir(), "vid2sepia")
	}
	return cfg, nil
}

// RegisterFlags binds command line flags to cfg; environment values become the flag defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.InputPath, "in", c.InputPath, "Path to the input video")
	fs.StringVar(&c.OutputPath, "out", c.OutputPath, "Path of the silent sepia video; the final file gets a _final suffix")
	fs.StringVar(&c.FFmpegPath, "ffmpeg", c.FFmpegPath, "ffmpeg binary")
	fs.StringVar(&c.FFprobePath, "ffprobe", c.FFprobePath, "ffprobe binary")
	fs.IntVar(&c.JPEGQuality, "quality", c.JPEGQuality, "JPEG quality of intermediate frames (2-31, lower is better)")
	fs.StringVar(&c.TempDir, "tmp", c.TempDir, "Directory for intermediate frames")
	fs.BoolVar(&c.KeepFrames, "keep-frames", c.KeepFrames, "Do not delete intermediate frames")
	fs.StringVar(&c.S3Bucket, "s3-bucket", c.S3Bucket, "Upload the final video to this S3 bucket")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
}

// Validate reports missing required settings
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if c.JPEGQuality < 2 || c.JPEGQuality > 31 {
		return errors.New("jpeg quality must be between 2 and 31")
	}
	return nil
}
