// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/session"
	"github.com/spf13/cobra"
)

func newStepsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all steps of the pipeline",
		Long: `List all steps of the configured pipeline in order.
Displays step IDs, kinds, names and the declared input and output shapes.`,
		Example: `  # List steps
  shapes steps list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runStepsList(cmd, ctx)
		},
	}

	return cmd
}

func runStepsList(cmd *cobra.Command, ctx *session.Context) error {
	out := cmd.OutOrStdout()
	if len(ctx.Pipeline.Steps) == 0 {
		_, _ = fmt.Fprintln(out, "No steps defined.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tKIND\tNAME\tINPUT\tOUTPUT")

	for _, s := range ctx.Pipeline.Steps {
		name := s.Name
		if utf8.RuneCountInString(name) > 30 {
			name = string([]rune(name)[:27]) + "..."
		}
		if name == "" {
			name = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Kind, name, shapeLabel(s.Input), shapeLabel(s.Output))
	}

	return w.Flush()
}

// shapeLabel renders a declared shape as "kind" or "kind/variant".
func shapeLabel(d *datashape.DataShape) string {
	if d == nil {
		return "-"
	}
	label := string(d.Kind)
	if tag := d.VariantTag(); tag != "" {
		label += "/" + tag
	}
	if d.IsCompressed() {
		label += " (" + d.Metadata[datashape.MetaCompression] + ")"
	}
	return label
}
