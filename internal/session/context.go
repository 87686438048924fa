// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dacolabs/shapes/internal/config"
	"github.com/dacolabs/shapes/internal/jschema"
	"github.com/dacolabs/shapes/internal/metadata"
	"github.com/dacolabs/shapes/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	// ErrNotInitialized indicates no shapes.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a shapes project (shapes.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPipelineNotFound indicates the pipeline file referenced by config doesn't exist.
	ErrPipelineNotFound = errors.New("pipeline file not found")

	// ErrInvalidPipeline indicates the pipeline file exists but couldn't be parsed.
	ErrInvalidPipeline = errors.New("invalid pipeline")
)

// ConfigFileName is the name of the shapes configuration file.
const ConfigFileName = "shapes.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the loaded configuration, pipeline and handler registry.
type Context struct {
	Config   *config.Config
	Pipeline *pipeline.Pipeline
	Registry *metadata.Registry
	Logger   *slog.Logger
}

// Options tune how a session is loaded.
type Options struct {
	// Dir is the project directory. Defaults to the working directory.
	Dir string
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer
}

// Load loads the project context and returns a new context.Context with the
// session Context stored in it.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	logger, err := NewLogger(opts.LogOutput, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	registry, err := metadata.NewRegistryFromNames(cfg.Handlers, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	pipelinePath := cfg.Pipeline
	if !filepath.IsAbs(pipelinePath) {
		pipelinePath = filepath.Join(dir, pipelinePath)
	}
	p, err := loadPipeline(pipelinePath)
	if err != nil {
		return nil, err
	}

	sessCtx := &Context{
		Config:   cfg,
		Pipeline: p,
		Registry: registry,
		Logger:   logger,
	}
	logger.Debug("session loaded",
		slog.String("pipeline", pipelinePath),
		slog.Int("steps", len(p.Steps)),
		slog.Int("handlers", registry.Len()),
	)

	return context.WithValue(ctx, contextKey{}, sessCtx), nil
}

func loadPipeline(path string) (*pipeline.Pipeline, error) {
	f, err := os.Open(path) //nolint:gosec // path is derived from config
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPipelineNotFound, err)
	}
	defer func() { _ = f.Close() }()

	parser := pipeline.JSON
	if jschema.FormatFromPath(path) == jschema.YAML {
		parser = pipeline.YAML
	}

	p, err := parser.Parse(f, os.DirFS(filepath.Dir(path)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPipeline, err)
	}
	return p, nil
}

// NewLogger builds the CLI's text logger. A nil writer means os.Stderr.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	l, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sessCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sessCtx
	}
	return nil
}

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("project context not loaded")
	}
	return ctx, nil
}

// PreRunLoad is a PersistentPreRunE function that loads the project context
// and stores it in the command's context. It honors a --log-level flag.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	var opts Options
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		opts.LogLevel = f.Value.String()
	}
	opts.LogOutput = cmd.ErrOrStderr()

	ctx, err := Load(cmd.Context(), opts)
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
