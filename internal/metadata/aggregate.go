// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package metadata

import (
	"io"
	"log/slog"

	"github.com/dacolabs/shapes/internal/adapt"
	"github.com/dacolabs/shapes/internal/datashape"
)

// AggregateHandler resolves the shapes of aggregate steps. An aggregate step
// collects every record produced upstream into a collection, and hands a
// single record to the step that consumes it downstream.
type AggregateHandler struct {
	logger *slog.Logger
}

// NewAggregateHandler creates an AggregateHandler. A nil logger discards output.
func NewAggregateHandler(logger *slog.Logger) *AggregateHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AggregateHandler{logger: logger}
}

// CanHandle reports true for aggregate steps only.
func (h *AggregateHandler) CanHandle(kind StepKind) bool {
	return kind == StepAggregate
}

// CreateMetadata takes the input shape of the first subsequent step that
// declares one, and the output shape of the closest previous step that
// declares one.
func (h *AggregateHandler) CreateMetadata(_ Step, previous, subsequent []Step) DynamicActionMetadata {
	input := datashape.NoShape
	for _, s := range subsequent {
		if d, ok := s.InputShape(); ok {
			input = d
			break
		}
	}

	output := datashape.NoShape
	for i := len(previous) - 1; i >= 0; i-- {
		if d, ok := previous[i].OutputShape(); ok {
			output = d
			break
		}
	}

	return DynamicActionMetadata{InputShape: input, OutputShape: output}
}

// Handle adapts the output shape to its collection form and the input shape
// to its element form. Each side falls back to its original shape on error.
func (h *AggregateHandler) Handle(m DynamicActionMetadata) DynamicActionMetadata {
	output := h.adaptSide("output", m.OutputShape, adapt.ToCollection)
	input := h.adaptSide("input", m.InputShape, adapt.ToElement)
	return m.WithShapes(input, output)
}

func (h *AggregateHandler) adaptSide(side string, d datashape.DataShape, fn func(datashape.DataShape) (datashape.DataShape, error)) datashape.DataShape {
	plain, err := datashape.Decompress(d)
	if err == nil {
		var adapted datashape.DataShape
		if adapted, err = fn(plain); err == nil {
			return adapted
		}
	}
	h.logger.Warn("unable to read data shape on dynamic metadata inspection, using original shape as fallback",
		slog.String("side", side),
		slog.String("kind", string(d.Kind)),
		slog.Any("err", err),
	)
	return d
}
