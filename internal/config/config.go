// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles shapes project configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/metadata"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// Defaults applied by Default and by Load for absent fields.
const (
	DefaultPipeline = "pipeline.yaml"
	DefaultLogLevel = "warn"
	DefaultCodec    = datashape.CodecGzip
)

// Config represents the shapes.yaml project configuration file.
type Config struct {
	Version  int      `yaml:"version"`
	Pipeline string   `yaml:"pipeline,omitempty"`
	Handlers []string `yaml:"handlers,omitempty"`
	LogLevel string   `yaml:"logLevel,omitempty"`
	Codec    string   `yaml:"codec,omitempty"`
}

// Default returns a configuration with every field set to its default.
func Default() Config {
	return Config{
		Version:  CurrentConfigVersion,
		Pipeline: DefaultPipeline,
		Handlers: metadata.Available(),
		LogLevel: DefaultLogLevel,
		Codec:    DefaultCodec,
	}
}

// Load reads a Config from a file path. Absent optional fields take their
// default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Pipeline == "" {
		c.Pipeline = def.Pipeline
	}
	if c.Handlers == nil {
		c.Handlers = def.Handlers
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Codec == "" {
		c.Codec = def.Codec
	}
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	seen := make(map[string]struct{}, len(c.Handlers))
	for _, name := range c.Handlers {
		if !metadata.IsAvailable(name) {
			return fmt.Errorf("unknown handler %q (available: %s)", name, strings.Join(metadata.Available(), ", "))
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("handler %q listed more than once", name)
		}
		seen[name] = struct{}{}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Codec != "" && !datashape.IsCodec(c.Codec) {
		return fmt.Errorf("unknown codec %q (available: %s)", c.Codec, strings.Join(datashape.Codecs(), ", "))
	}
	return nil
}

// ParseLevel converts a log level name to a slog.Level. The empty string
// maps to the default level.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		s = DefaultLogLevel
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
