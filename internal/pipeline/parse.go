// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/jschema"
	"github.com/dacolabs/shapes/internal/metadata"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type rawPipeline struct {
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []rawStep `yaml:"steps" json:"steps"`
}

type rawStep struct {
	ID     string            `yaml:"id,omitempty" json:"id,omitempty"`
	Name   string            `yaml:"name,omitempty" json:"name,omitempty"`
	Kind   metadata.StepKind `yaml:"kind" json:"kind"`
	Input  *rawShape         `yaml:"inputShape,omitempty" json:"inputShape,omitempty"`
	Output *rawShape         `yaml:"outputShape,omitempty" json:"outputShape,omitempty"`
}

// rawShape is a data shape whose specification may live in a separate file.
type rawShape struct {
	datashape.DataShape `yaml:",inline"`
	SpecificationFile   string `yaml:"specificationFile,omitempty" json:"specificationFile,omitempty"`
}

// Parser decodes a pipeline document from an io.Reader.
type Parser struct {
	parse func(io.Reader) (*rawPipeline, error)
}

var (
	// JSON parses pipeline documents from JSON.
	JSON = Parser{parseJSON}
	// YAML parses pipeline documents from YAML.
	YAML = Parser{parseYAML}
)

// Parse decodes a pipeline from r. Specification files referenced by shapes
// are read from fsys. Steps without an ID are assigned a random one.
func (p Parser) Parse(r io.Reader, fsys fs.FS) (*Pipeline, error) {
	if fsys == nil {
		return nil, errors.New("fsys is required to resolve specification files")
	}
	raw, err := p.parse(r)
	if err != nil {
		return nil, err
	}

	loader := jschema.NewLoader(fsys)
	seen := make(map[string]struct{}, len(raw.Steps))
	steps := make([]Step, 0, len(raw.Steps))
	for i, rs := range raw.Steps {
		if rs.Kind == "" {
			return nil, fmt.Errorf("step %d: kind is required", i)
		}
		id := rs.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("step %d: duplicate step id %q", i, id)
		}
		seen[id] = struct{}{}

		input, err := resolveShape(loader, rs.Input)
		if err != nil {
			return nil, fmt.Errorf("step %q: input shape: %w", id, err)
		}
		output, err := resolveShape(loader, rs.Output)
		if err != nil {
			return nil, fmt.Errorf("step %q: output shape: %w", id, err)
		}

		steps = append(steps, Step{
			ID:     id,
			Name:   rs.Name,
			Kind:   rs.Kind,
			Input:  input,
			Output: output,
		})
	}

	return &Pipeline{
		Name:        raw.Name,
		Description: raw.Description,
		Steps:       steps,
	}, nil
}

func resolveShape(loader *jschema.Loader, rs *rawShape) (*datashape.DataShape, error) {
	if rs == nil {
		return nil, nil
	}
	d := rs.DataShape
	if d.Kind == "" {
		return nil, errors.New("kind is required")
	}
	if rs.SpecificationFile != "" {
		if d.Specification != "" {
			return nil, errors.New("specification and specificationFile are mutually exclusive")
		}
		spec, err := loader.LoadFile(path.Clean(rs.SpecificationFile))
		if err != nil {
			return nil, fmt.Errorf("failed to load specification %q: %w", rs.SpecificationFile, err)
		}
		d = d.WithSpecification(spec)
	}
	return &d, nil
}

func parseJSON(r io.Reader) (*rawPipeline, error) {
	var raw rawPipeline
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func parseYAML(r io.Reader) (*rawPipeline, error) {
	var raw rawPipeline
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
