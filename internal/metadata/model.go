// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package metadata computes the input and output shapes of pipeline steps.
package metadata

import (
	"slices"

	"github.com/dacolabs/shapes/internal/datashape"
)

// StepKind identifies the category of a pipeline step.
type StepKind string

// Known step kinds.
const (
	StepEndpoint         StepKind = "endpoint"
	StepConnector        StepKind = "connector"
	StepAggregate        StepKind = "aggregate"
	StepSplit            StepKind = "split"
	StepMapper           StepKind = "mapper"
	StepLog              StepKind = "log"
	StepRuleFilter       StepKind = "ruleFilter"
	StepExpressionFilter StepKind = "expressionFilter"
	StepHeaders          StepKind = "headers"
	StepTemplate         StepKind = "template"
	StepChoice           StepKind = "choice"
	StepExtension        StepKind = "extension"
)

// Step is the view of a pipeline step needed to infer shapes.
type Step interface {
	StepKind() StepKind
	// InputShape returns the declared input shape, if any.
	InputShape() (datashape.DataShape, bool)
	// OutputShape returns the declared output shape, if any.
	OutputShape() (datashape.DataShape, bool)
}

// PropertySuggestion is a suggested value for a step property.
type PropertySuggestion struct {
	Value        string `yaml:"value" json:"value"`
	DisplayValue string `yaml:"displayValue,omitempty" json:"displayValue,omitempty"`
}

// DynamicActionMetadata is the resolved metadata of a step.
type DynamicActionMetadata struct {
	InputShape  datashape.DataShape             `yaml:"inputShape" json:"inputShape"`
	OutputShape datashape.DataShape             `yaml:"outputShape" json:"outputShape"`
	Properties  map[string][]PropertySuggestion `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// WithShapes returns a copy of m with both shapes replaced.
func (m DynamicActionMetadata) WithShapes(input, output datashape.DataShape) DynamicActionMetadata {
	c := DynamicActionMetadata{InputShape: input, OutputShape: output}
	if m.Properties != nil {
		c.Properties = make(map[string][]PropertySuggestion, len(m.Properties))
		for k, v := range m.Properties {
			c.Properties[k] = slices.Clone(v)
		}
	}
	return c
}

// NoMetadata is the metadata of a step whose shapes are unknown.
var NoMetadata = DynamicActionMetadata{InputShape: datashape.NoShape, OutputShape: datashape.NoShape}
