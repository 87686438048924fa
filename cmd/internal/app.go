// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/shapes/internal/commands"
)

// LogLevelEnv names the environment variable that sets the default log level.
const LogLevelEnv = "SHAPES_LOG_LEVEL"

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd()
	if level := getenv(LogLevelEnv); level != "" {
		// An explicit --log-level still wins, it is parsed after this.
		if err := rootCmd.PersistentFlags().Set("log-level", level); err != nil {
			return err
		}
	}
	return rootCmd.ExecuteContext(ctx)
}
