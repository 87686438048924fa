// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package metadata

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
)

// ErrUnknownHandler indicates a handler name is not in the handler table.
var ErrUnknownHandler = errors.New("unknown metadata handler")

// Handler resolves the metadata of one category of steps.
type Handler interface {
	// CanHandle reports whether the handler is responsible for steps of kind.
	CanHandle(kind StepKind) bool

	// CreateMetadata infers a first guess of the step's shapes from its
	// neighbors. previous and subsequent are in pipeline order.
	CreateMetadata(step Step, previous, subsequent []Step) DynamicActionMetadata

	// Handle refines metadata, for example by adapting shapes to the role
	// the step plays. It never fails; on error the input shapes are kept.
	Handle(metadata DynamicActionMetadata) DynamicActionMetadata
}

// Registry selects handlers by step kind in registration order.
type Registry struct {
	handlers []Handler
	names    []string
}

// NewRegistry creates a Registry that consults handlers in the given order.
// Handlers registered this way have no name.
func NewRegistry(handlers ...Handler) *Registry {
	return &Registry{handlers: handlers, names: make([]string, len(handlers))}
}

// For returns the first registered handler that can handle kind, or a no-op
// handler when none can.
func (r *Registry) For(kind StepKind) Handler {
	if i := r.index(kind); i >= 0 {
		return r.handlers[i]
	}
	return noopHandler{}
}

// NameFor returns the handler-table name of the handler selected for kind.
// It is empty when no handler matches or the match was registered unnamed.
func (r *Registry) NameFor(kind StepKind) string {
	if i := r.index(kind); i >= 0 {
		return r.names[i]
	}
	return ""
}

func (r *Registry) index(kind StepKind) int {
	for i, h := range r.handlers {
		if h.CanHandle(kind) {
			return i
		}
	}
	return -1
}

// Handles reports whether a registered handler, rather than the no-op
// fallback, is responsible for kind.
func (r *Registry) Handles(kind StepKind) bool {
	return r.index(kind) >= 0
}

// Resolve runs the selected handler's inference and refinement for step.
func (r *Registry) Resolve(step Step, previous, subsequent []Step) DynamicActionMetadata {
	h := r.For(step.StepKind())
	return h.Handle(h.CreateMetadata(step, previous, subsequent))
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.handlers)
}

type noopHandler struct{}

func (noopHandler) CanHandle(StepKind) bool { return true }

func (noopHandler) CreateMetadata(Step, []Step, []Step) DynamicActionMetadata {
	return NoMetadata
}

func (noopHandler) Handle(m DynamicActionMetadata) DynamicActionMetadata { return m }

// Factory builds a handler with the given logger.
type Factory func(logger *slog.Logger) Handler

// handlerTable lists the handlers that can be named in configuration.
var handlerTable = map[string]Factory{
	"aggregate": func(logger *slog.Logger) Handler { return NewAggregateHandler(logger) },
}

// Available returns the names of all configurable handlers, sorted.
func Available() []string {
	names := make([]string, 0, len(handlerTable))
	for name := range handlerTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAvailable reports whether name is a configurable handler.
func IsAvailable(name string) bool {
	_, ok := handlerTable[name]
	return ok
}

// NewRegistryFromNames builds a Registry from handler names, preserving order.
func NewRegistryFromNames(names []string, logger *slog.Logger) (*Registry, error) {
	handlers := make([]Handler, 0, len(names))
	for _, name := range names {
		f, ok := handlerTable[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownHandler, name)
		}
		handlers = append(handlers, f(logger))
	}
	return &Registry{handlers: handlers, names: slices.Clone(names)}, nil
}
