// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/shapes/internal/config"
	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/metadata"
	"github.com/dacolabs/shapes/internal/prompts"
	"github.com/dacolabs/shapes/internal/session"
	"github.com/spf13/cobra"
)

type initOptions struct {
	pipeline       string
	handlers       []string
	codec          string
	force          bool
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new shapes project",
		Long: `Initialize a new shapes project with a shapes.yaml configuration file.
The configuration points at the pipeline document and lists the metadata
handlers in the order they are consulted.`,
		Example: `  # Interactive mode
  shapes init

  # Non-interactive
  shapes init --pipeline pipelines/orders.yaml --non-interactive
  shapes init --handlers aggregate --codec zstd --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pipeline, "pipeline", "p", config.DefaultPipeline, "Path to the pipeline file")
	cmd.Flags().StringSliceVar(&opts.handlers, "handlers", metadata.Available(), "Metadata handlers in registration order")
	cmd.Flags().StringVarP(&opts.codec, "codec", "c", config.DefaultCodec, "Default specification codec (gzip or zstd)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing shapes.yaml")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		return errors.New("shapes.yaml already exists; use --force to overwrite")
	}

	if !opts.nonInteractive && !cmd.Flags().Changed("pipeline") {
		if err := prompts.RunInitForm(
			&opts.pipeline,
			&opts.handlers,
			metadata.Available(),
			&opts.codec,
			datashape.Codecs(),
		); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.Pipeline = opts.pipeline
	cfg.Handlers = opts.handlers
	cfg.Codec = opts.codec

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	out := cmd.OutOrStdout()
	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Config", Value: configPath},
		{Label: "Pipeline", Value: cfg.Pipeline},
	}, "Initialization completed")

	pipelinePath := cfg.Pipeline
	if !filepath.IsAbs(pipelinePath) {
		pipelinePath = filepath.Join(cwd, pipelinePath)
	}
	if _, err := os.Stat(pipelinePath); os.IsNotExist(err) {
		_, _ = fmt.Fprintf(out, "Note: %s does not exist yet\n", cfg.Pipeline)
	}
	return nil
}
