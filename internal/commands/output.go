// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/jschema"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

func writeDocument(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q (use yaml or json)", format)
	}
}

// readShape decodes a YAML or JSON shape document from path, or from r when
// path is empty or "-".
func readShape(path string, r io.Reader) (datashape.DataShape, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is provided by user
	}
	if err != nil {
		return datashape.DataShape{}, fmt.Errorf("failed to read shape: %w", err)
	}

	// YAML is a superset of JSON, so one decoder serves both.
	var d datashape.DataShape
	if err := yaml.Unmarshal(data, &d); err != nil {
		return datashape.DataShape{}, fmt.Errorf("failed to parse shape: %w", err)
	}
	if d.Kind == "" {
		return datashape.DataShape{}, fmt.Errorf("failed to parse shape: kind is required")
	}
	return d, nil
}

// readSpecification loads a JSON or YAML specification from path, or from r
// when path is empty, and returns it as compact JSON text.
func readSpecification(path string, r io.Reader) (string, error) {
	if path != "" && path != "-" {
		spec, err := jschema.NewLoader(os.DirFS(filepath.Dir(path))).LoadFile(filepath.Base(path))
		if err != nil {
			return "", fmt.Errorf("failed to load specification: %w", err)
		}
		return spec, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read specification: %w", err)
	}
	format := jschema.YAML
	if json.Valid(data) {
		format = jschema.JSON
	}
	return jschema.ToJSON(data, format)
}

// describeShape renders a one-line human summary of d.
func describeShape(d datashape.DataShape) string {
	if d.IsNone() {
		return "none"
	}
	label := string(d.Kind)
	if tag := d.VariantTag(); tag != "" {
		label += "/" + tag
	}

	switch {
	case d.IsCompressed():
		label += fmt.Sprintf(" [%s compressed]", d.Metadata[datashape.MetaCompression])
	case d.Kind == datashape.KindJSONSchema:
		if s, err := jschema.Parse(d.Specification); err == nil {
			sum := jschema.Summarize(s)
			label += fmt.Sprintf(" %s, %d properties", sum.Type, sum.Properties)
			if sum.Dialect != "" {
				label += ", " + sum.Dialect
			}
		}
	case d.Specification != "":
		spec := d.Specification
		if utf8.RuneCountInString(spec) > 40 {
			spec = string([]rune(spec)[:37]) + "..."
		}
		label += " " + spec
	}

	if n := len(d.Variants); n > 0 {
		label += fmt.Sprintf(" (+%d variants)", n)
	}
	return label
}
