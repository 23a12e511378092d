package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg"`
	Silence    SilenceConfig    `yaml:"silence"`
	Transcribe TranscribeConfig `yaml:"transcribe"`
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
}

// SilenceConfig controls silence removal before transcription.
// ThresholdDB is in dBFS; anything quieter counts as silence.
type SilenceConfig struct {
	ThresholdDB  int   `yaml:"threshold_db"`
	MinSilenceMs int64 `yaml:"min_silence_ms"`
	PaddingMs    int64 `yaml:"padding_ms"`
}

type TranscribeConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

type PathsConfig struct {
	Temp       string `yaml:"temp"`
	Output     string `yaml:"output"`
	WatchInput string `yaml:"watch_input"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Credentials holds the server-side secrets. They never live in the
// YAML file; main populates them from the environment and hands them
// to the pipeline explicitly.
type Credentials struct {
	AdminToken    string
	BackendAPIKey string
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 512
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.Silence.ThresholdDB == 0 {
		c.Silence.ThresholdDB = -40
	}
	if c.Silence.ThresholdDB > 0 {
		return fmt.Errorf("silence.threshold_db must be negative dBFS, got %d", c.Silence.ThresholdDB)
	}
	if c.Silence.MinSilenceMs == 0 {
		c.Silence.MinSilenceMs = 500
	}
	if c.Silence.MinSilenceMs < 0 {
		return fmt.Errorf("silence.min_silence_ms must be positive, got %d", c.Silence.MinSilenceMs)
	}
	if c.Silence.PaddingMs == 0 {
		c.Silence.PaddingMs = 100
	}
	if c.Silence.PaddingMs < 0 {
		return fmt.Errorf("silence.padding_ms cannot be negative, got %d", c.Silence.PaddingMs)
	}
	switch c.Transcribe.Provider {
	case "":
		c.Transcribe.Provider = "openai"
	case "openai", "gemini":
	default:
		return fmt.Errorf("transcribe.provider must be openai or gemini, got %q", c.Transcribe.Provider)
	}
	if c.Transcribe.Model == "" {
		switch c.Transcribe.Provider {
		case "gemini":
			c.Transcribe.Model = "gemini-2.5-flash"
		default:
			c.Transcribe.Model = "whisper-1"
		}
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
