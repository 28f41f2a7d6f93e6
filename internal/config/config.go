// Package config loads the optional YAML configuration of levelutils.
package config

import (
	"os"

	"github.com/eak1mov/go-libedge/pack"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "LIBEDGE_CONFIG"

type Config struct {
	Pack    PackConfig   `yaml:"pack"`
	Levels  LevelsConfig `yaml:"levels"`
	Verbose bool         `yaml:"verbose"`
}

type PackConfig struct {
	Compression string            `yaml:"compression"`
	Metadata    map[string]string `yaml:"metadata"`
}

type LevelsConfig struct {
	// Pattern is the default path pattern of level directories, e.g. "levels/level{id}.bin".
	Pattern string `yaml:"pattern"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Pack:   PackConfig{Compression: pack.CompressionGzip.String()},
		Levels: LevelsConfig{Pattern: "levels/level{id}.bin"},
	}
}

// Load reads a YAML configuration file over the defaults.
// If path is empty, it is taken from LIBEDGE_CONFIG; with neither set the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Compression parses the configured pack compression.
func (c *Config) Compression() (pack.Compression, error) {
	return pack.ParseCompression(c.Pack.Compression)
}
