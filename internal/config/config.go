// Package config reads the optional csv2table.yaml from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "csv2table.yaml"

// ProjectConfig holds defaults for flags that were not given.
type ProjectConfig struct {
	Connection  string `yaml:"connection"`
	Dialect     string `yaml:"dialect,omitempty"`
	User        string `yaml:"user,omitempty"`
	Delimiter   string `yaml:"delimiter,omitempty"`
	PreviewRows int    `yaml:"preview_rows,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	if cfg.PreviewRows < 0 {
		return nil, fmt.Errorf("%s: preview_rows cannot be negative", ConfigFileName)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout. An empty value returns zero.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid timeout %q: %w", ConfigFileName, c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: timeout cannot be negative", ConfigFileName)
	}
	return d, nil
}
