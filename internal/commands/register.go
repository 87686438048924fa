// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/dacolabs/shapes/internal/session"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shapes",
		Short:         "Infer and adapt the data shapes flowing between pipeline steps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides shapes.yaml")

	registerInitCmd(rootCmd)
	registerStepsCmd(rootCmd)
	registerShapeCmd(rootCmd)
	registerVersionCmd(rootCmd)

	return rootCmd
}

func registerInitCmd(parent *cobra.Command) {
	parent.AddCommand(newInitCmd())
}

func registerStepsCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "steps",
		Short:             "Inspect pipeline steps",
		PersistentPreRunE: session.PreRunLoad,
	}

	cmd.AddCommand(newStepsListCmd())
	cmd.AddCommand(newStepsMetadataCmd())

	parent.AddCommand(cmd)
}

func registerShapeCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "shape",
		Short: "Transform standalone data shapes",
	}

	cmd.AddCommand(newShapeAdaptCmd())
	cmd.AddCommand(newShapeCompressCmd())
	cmd.AddCommand(newShapeDecompressCmd())

	parent.AddCommand(cmd)
}

func registerVersionCmd(parent *cobra.Command) {
	parent.AddCommand(newVersionCmd())
}
