// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pipeline provides the pipeline document model and neighbor
// resolution for its steps.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/metadata"
)

// ErrStepNotFound indicates no step has the requested ID.
var ErrStepNotFound = errors.New("step not found")

// Pipeline is an ordered sequence of steps.
type Pipeline struct {
	Name        string
	Description string
	Steps       []Step
}

// Step is a single pipeline node.
type Step struct {
	ID     string
	Name   string
	Kind   metadata.StepKind
	Input  *datashape.DataShape
	Output *datashape.DataShape
}

var _ metadata.Step = Step{}

// StepKind returns the step's kind.
func (s Step) StepKind() metadata.StepKind { return s.Kind }

// InputShape returns the declared input shape.
func (s Step) InputShape() (datashape.DataShape, bool) {
	if s.Input == nil {
		return datashape.DataShape{}, false
	}
	return *s.Input, true
}

// OutputShape returns the declared output shape.
func (s Step) OutputShape() (datashape.DataShape, bool) {
	if s.Output == nil {
		return datashape.DataShape{}, false
	}
	return *s.Output, true
}

// Step returns the step with the given ID.
func (p *Pipeline) Step(id string) (Step, error) {
	i, err := p.index(id)
	if err != nil {
		return Step{}, err
	}
	return p.Steps[i], nil
}

// Neighbors returns the step with the given ID together with the steps
// before and after it, in pipeline order.
func (p *Pipeline) Neighbors(id string) (step metadata.Step, previous, subsequent []metadata.Step, err error) {
	i, err := p.index(id)
	if err != nil {
		return nil, nil, nil, err
	}
	previous = make([]metadata.Step, 0, i)
	for _, s := range p.Steps[:i] {
		previous = append(previous, s)
	}
	subsequent = make([]metadata.Step, 0, len(p.Steps)-i-1)
	for _, s := range p.Steps[i+1:] {
		subsequent = append(subsequent, s)
	}
	return p.Steps[i], previous, subsequent, nil
}

func (p *Pipeline) index(id string) (int, error) {
	for i, s := range p.Steps {
		if s.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrStepNotFound, id)
}
