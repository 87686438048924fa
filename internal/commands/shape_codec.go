// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"strings"

	"github.com/dacolabs/shapes/internal/config"
	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/session"
	"github.com/spf13/cobra"
)

type shapeCodecOptions struct {
	codec  string
	file   string
	format string
}

func newShapeCompressCmd() *cobra.Command {
	opts := &shapeCodecOptions{}

	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress the specification of a shape document",
		Long: `Compress the specification of a YAML or JSON shape document.
The codec defaults to the one configured in shapes.yaml, or gzip outside a
project. Already compressed shapes are printed unchanged.`,
		Example: `  # Compress with the configured codec
  shapes shape compress --file shape.yaml

  # Compress with zstd and print JSON
  shapes shape compress --codec zstd --file shape.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShapeCompress(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.codec, "codec", "c", "", "Codec ("+strings.Join(datashape.Codecs(), ", ")+")")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Shape document; stdin when empty")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatYAML, "Output format (yaml or json)")

	return cmd
}

func newShapeDecompressCmd() *cobra.Command {
	opts := &shapeCodecOptions{}

	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Decompress the specification of a shape document",
		Long: `Decompress the specification of a YAML or JSON shape document and of
all its variants. Uncompressed shapes are printed unchanged.`,
		Example: `  # Decompress a shape
  shapes shape decompress --file shape.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShapeDecompress(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Shape document; stdin when empty")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatYAML, "Output format (yaml or json)")

	return cmd
}

func runShapeCompress(cmd *cobra.Command, opts *shapeCodecOptions) error {
	d, err := readShape(opts.file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	codec := opts.codec
	if codec == "" {
		codec = configuredCodec()
	}

	got, err := datashape.Compress(d, codec)
	if err != nil {
		return err
	}
	return writeDocument(cmd.OutOrStdout(), opts.format, got)
}

func runShapeDecompress(cmd *cobra.Command, opts *shapeCodecOptions) error {
	d, err := readShape(opts.file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	got, err := datashape.Decompress(d)
	if err != nil {
		return fmt.Errorf("failed to decompress shape: %w", err)
	}
	return writeDocument(cmd.OutOrStdout(), opts.format, got)
}

// configuredCodec returns the codec of the shapes.yaml in the working
// directory, or the default codec when there is none.
func configuredCodec() string {
	cfg, err := config.Load(session.ConfigFileName)
	if err != nil {
		return config.DefaultCodec
	}
	return cfg.Codec
}
