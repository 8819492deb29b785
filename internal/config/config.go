package config

import (
	"errors"
	"strings"

	libconfig "campuswatt/libs/config"
)

// Config defines the dashboard pipeline configuration.
type Config struct {
	Data struct {
		Dir string `yaml:"dir" env:"CAMPUSWATT_DATA_DIR"`
	} `yaml:"data"`
	Output struct {
		Dir string `yaml:"dir" env:"CAMPUSWATT_OUTPUT_DIR"`
	} `yaml:"output"`
}

// Load configuration using the shared helper. Directories default to the
// conventional data/ and output/ locations relative to the run directory.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.Data.Dir = "data"
	cfg.Output.Dir = "output"

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Data.Dir) == "" {
		return nil, errors.New("config: data dir required")
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return nil, errors.New("config: output dir required")
	}
	return cfg, nil
}
