// Package config holds runtime settings for the slidegrab commands:
// environment-driven process settings and TOML extraction presets.
package config

import (
	"github.com/caarlos0/env/v11"
)

// Config is the process-level configuration, read from the environment.
type Config struct {
	VideoPath  string `env:"SLIDEGRAB_VIDEO"`
	OutputDir  string `env:"SLIDEGRAB_OUTPUT"   envDefault:"./slides_output"`
	LogLevel   string `env:"SLIDEGRAB_LOG_LEVEL" envDefault:"info"`
	FFmpegBin  string `env:"SLIDEGRAB_FFMPEG"`
	FFprobeBin string `env:"SLIDEGRAB_FFPROBE"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
