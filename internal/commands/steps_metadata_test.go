// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dacolabs/shapes/internal/metadata"
	"github.com/dacolabs/shapes/internal/pipeline"
	"github.com/dacolabs/shapes/internal/session"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handlerLine(t *testing.T, registry *metadata.Registry) string {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	ctx := &session.Context{
		Pipeline: &pipeline.Pipeline{Steps: []pipeline.Step{{ID: "collect", Kind: metadata.StepAggregate}}},
		Registry: registry,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	require.NoError(t, runStepsMetadata(cmd, ctx, &stepsMetadataOptions{step: "collect", format: formatText}))
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, "Handler") {
			return line
		}
	}
	t.Fatalf("no handler line in output:\n%s", out.String())
	return ""
}

func TestStepsMetadata_HandlerName(t *testing.T) {
	named, err := metadata.NewRegistryFromNames([]string{"aggregate"}, nil)
	require.NoError(t, err)

	assert.Contains(t, handlerLine(t, named), "aggregate")
	assert.Contains(t, handlerLine(t, metadata.NewRegistry(metadata.NewAggregateHandler(nil))), "unnamed")
	assert.Contains(t, handlerLine(t, metadata.NewRegistry()), "none")
}
