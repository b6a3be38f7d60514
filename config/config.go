// Package config carries environment-driven runtime defaults. Command-line
// flags take precedence over these values.
package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Workers is the parallel decode worker count; 0 means one per CPU.
	Workers int `env:"SHARPCTL_WORKERS" envDefault:"0"`
	// ThumbHeight is the pixel height of selection thumbnails.
	ThumbHeight int `env:"SHARPCTL_THUMB_HEIGHT" envDefault:"120"`
	// ImageFormat is the export image extension (jpg, png, ...).
	ImageFormat string `env:"SHARPCTL_IMAGE_FORMAT" envDefault:"jpg"`
	// LogLevel sets the diagnostic log level (panic..trace).
	LogLevel string `env:"SHARPCTL_LOG_LEVEL" envDefault:"warn"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
