// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/dacolabs/shapes/internal/adapt"
	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/spf13/cobra"
)

type shapeAdaptOptions struct {
	to     string
	kind   string
	file   string
	format string
}

func newShapeAdaptCmd() *cobra.Command {
	opts := &shapeAdaptOptions{}

	cmd := &cobra.Command{
		Use:   "adapt",
		Short: "Adapt a specification to its element or collection form",
		Long: `Adapt a standalone JSON schema or JSON instance to the shape of one
element or of a collection of elements. The specification is read from --file
or from stdin and the resulting shape, with its variants, is printed.`,
		Example: `  # Element of an array schema
  shapes shape adapt --to element --kind json-schema --file orders.json

  # Collection of an instance read from stdin
  echo '{"id":1}' | shapes shape adapt --to collection --kind json-instance`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShapeAdapt(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Target form (element or collection)")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", string(datashape.KindJSONSchema), "Specification kind (json-schema or json-instance)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Specification file; stdin when empty")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatYAML, "Output format (yaml or json)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runShapeAdapt(cmd *cobra.Command, opts *shapeAdaptOptions) error {
	var fn func(datashape.DataShape) (datashape.DataShape, error)
	switch opts.to {
	case datashape.VariantElement:
		fn = adapt.ToElement
	case datashape.VariantCollection:
		fn = adapt.ToCollection
	default:
		return fmt.Errorf("--to must be one of: element, collection")
	}

	kind := datashape.Kind(opts.kind)
	if kind != datashape.KindJSONSchema && kind != datashape.KindJSONInstance {
		return fmt.Errorf("--kind must be one of: json-schema, json-instance")
	}

	spec, err := readSpecification(opts.file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	got, err := fn(datashape.DataShape{Kind: kind, Specification: spec})
	if err != nil {
		return err
	}
	return writeDocument(cmd.OutOrStdout(), opts.format, got)
}
