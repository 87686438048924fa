// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dacolabs/shapes/internal/metadata"
	"github.com/dacolabs/shapes/internal/prompts"
	"github.com/dacolabs/shapes/internal/session"
	"github.com/spf13/cobra"
)

type stepsMetadataOptions struct {
	step   string
	format string
}

// stepMetadata is the document printed for the yaml and json formats.
type stepMetadata struct {
	Step                           string `yaml:"step" json:"step"`
	Kind                           string `yaml:"kind" json:"kind"`
	metadata.DynamicActionMetadata `yaml:",inline"`
}

func newStepsMetadataCmd() *cobra.Command {
	opts := &stepsMetadataOptions{}

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Resolve the input and output shapes of a step",
		Long: `Resolve the input and output shapes of a step from its neighbors.
The first registered handler that accepts the step kind infers the shapes and
adapts them to the role the step plays. Steps no handler accepts resolve to
no shape on both sides.`,
		Example: `  # Interactive mode
  shapes steps metadata

  # Non-interactive
  shapes steps metadata --step collect
  shapes steps metadata --step collect --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runStepsMetadata(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.step, "step", "s", "", "ID of the step to resolve")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatText, "Output format (text, yaml, json)")

	return cmd
}

func runStepsMetadata(cmd *cobra.Command, ctx *session.Context, opts *stepsMetadataOptions) error {
	switch opts.format {
	case formatText, formatYAML, formatJSON:
	default:
		return fmt.Errorf("--format must be one of: text, yaml, json")
	}

	stepID := opts.step
	if stepID == "" {
		if err := prompts.RunSelectStepForm(&stepID, ctx.Pipeline); err != nil {
			return err
		}
	}

	step, previous, subsequent, err := ctx.Pipeline.Neighbors(stepID)
	if err != nil {
		return err
	}

	kind := step.StepKind()
	handled := ctx.Registry.Handles(kind)
	ctx.Logger.Debug("resolving step metadata",
		slog.String("step", stepID),
		slog.String("kind", string(kind)),
		slog.Bool("handled", handled),
		slog.Int("previous", len(previous)),
		slog.Int("subsequent", len(subsequent)),
	)

	m := ctx.Registry.Resolve(step, previous, subsequent)

	out := cmd.OutOrStdout()
	if opts.format != formatText {
		return writeDocument(out, opts.format, stepMetadata{
			Step:                  stepID,
			Kind:                  string(kind),
			DynamicActionMetadata: m,
		})
	}

	handler := "none"
	if handled {
		handler = ctx.Registry.NameFor(kind)
		if handler == "" {
			handler = "unnamed"
		}
	}
	fields := []prompts.ResultField{
		{Label: "Step", Value: fmt.Sprintf("%s (%s)", stepID, kind)},
		{Label: "Handler", Value: handler},
		{Label: "Input", Value: describeShape(m.InputShape)},
		{Label: "Output", Value: describeShape(m.OutputShape)},
	}
	if len(m.Properties) > 0 {
		fields = append(fields, prompts.ResultField{Label: "Properties", Value: describeProperties(m.Properties)})
	}
	prompts.PrintResult(out, fields, "Metadata resolved")
	return nil
}

func describeProperties(props map[string][]metadata.PropertySuggestion) string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (%d suggestions)", name, len(props[name]))
	}
	return strings.Join(parts, ", ")
}
