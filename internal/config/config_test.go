// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "shapes.yaml")

	cfg := Config{
		Version:  1,
		Pipeline: "flows/orders.yaml",
		Handlers: []string{"aggregate"},
		LogLevel: "debug",
		Codec:    "zstd",
	}

	err := cfg.Save(cfgPath)
	require.NoError(t, err)

	loaded, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, cfg, *loaded)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg:  Default(),
		},
		{
			name: "minimal config",
			cfg:  Config{Version: 1},
		},
		{
			name:    "unsupported version",
			cfg:     Config{Version: 99},
			wantErr: "unsupported config version",
		},
		{
			name:    "unknown handler",
			cfg:     Config{Version: 1, Handlers: []string{"split"}},
			wantErr: `unknown handler "split"`,
		},
		{
			name:    "duplicate handler",
			cfg:     Config{Version: 1, Handlers: []string{"aggregate", "aggregate"}},
			wantErr: "more than once",
		},
		{
			name:    "invalid log level",
			cfg:     Config{Version: 1, LogLevel: "loud"},
			wantErr: "invalid log level",
		},
		{
			name:    "unknown codec",
			cfg:     Config{Version: 1, Codec: "lzma"},
			wantErr: `unknown codec "lzma"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveFormat(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "shapes.yaml")

	cfg := Default()
	require.NoError(t, cfg.Save(cfgPath))

	content, err := os.ReadFile(cfgPath) //nolint:gosec // test file path
	require.NoError(t, err)

	output := string(content)
	assert.Contains(t, output, "version: 1")
	assert.Contains(t, output, "pipeline: pipeline.yaml")
	assert.Contains(t, output, "logLevel: warn")
	assert.Contains(t, output, "- aggregate")
}

func TestConfig_Load(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "flows/orders.yaml", cfg.Pipeline)
	assert.Equal(t, []string{"aggregate"}, cfg.Handlers)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultCodec, cfg.Codec)
}

func TestConfig_LoadEmptyHandlers(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "shapes.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\nhandlers: []\n"), 0o600))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Empty(t, cfg.Handlers, "an explicit empty list disables every handler")
}

func TestConfig_Load_NotFound(t *testing.T) {
	_, err := Load("testdata/nonexistent.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Invalid(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	assert.Error(t, err)
}

func TestConfig_Save_InvalidPath(t *testing.T) {
	cfg := Config{Version: 1}

	err := cfg.Save("/nonexistent/directory/config.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	emptyFile := filepath.Join(tmpDir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyFile, []byte(""), 0o600))

	_, err := Load(emptyFile)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelWarn, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
