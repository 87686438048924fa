// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"maps"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// Traverse returns an iterator over all schemas in the tree, root first.
// Each schema is yielded once even if it is reachable more than once.
func Traverse(schema *jsonschema.Schema) iter.Seq[*jsonschema.Schema] {
	return func(yield func(*jsonschema.Schema) bool) {
		visited := make(map[*jsonschema.Schema]struct{})
		walk(schema, yield, visited)
	}
}

func walk(s *jsonschema.Schema, yield func(*jsonschema.Schema) bool, visited map[*jsonschema.Schema]struct{}) bool {
	if s == nil {
		return true
	}
	if _, ok := visited[s]; ok {
		return true
	}
	visited[s] = struct{}{}

	if !yield(s) {
		return false
	}
	for _, c := range children(s) {
		if !walk(c, yield, visited) {
			return false
		}
	}
	return true
}

// children lists the direct sub-schemas of s. Map-valued keywords are
// visited in key order so iteration is deterministic.
func children(s *jsonschema.Schema) []*jsonschema.Schema {
	var out []*jsonschema.Schema
	for _, m := range []map[string]*jsonschema.Schema{
		s.Properties, s.PatternProperties, s.DependentSchemas, s.Defs, s.Definitions,
	} {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			out = append(out, m[k])
		}
	}
	out = append(out,
		s.AdditionalProperties, s.PropertyNames, s.UnevaluatedProperties,
		s.Items, s.AdditionalItems, s.Contains, s.UnevaluatedItems,
		s.Not, s.If, s.Then, s.Else, s.ContentSchema,
	)
	for _, l := range [][]*jsonschema.Schema{s.ItemsArray, s.PrefixItems, s.AllOf, s.AnyOf, s.OneOf} {
		out = append(out, l...)
	}
	return out
}

// Summary describes the top level of a schema for display.
type Summary struct {
	Type       string // declared type, "array<T>" for single-item arrays
	Properties int    // properties declared anywhere in the tree
	Dialect    string // $schema of the root, if any
}

// Summarize computes a Summary for s.
func Summarize(s *jsonschema.Schema) Summary {
	sum := Summary{Type: typeName(s), Dialect: s.Schema}
	for sub := range Traverse(s) {
		sum.Properties += len(sub.Properties)
	}
	return sum
}

func typeName(s *jsonschema.Schema) string {
	if items, ok := SingleItems(s); ok {
		return "array<" + typeName(items) + ">"
	}
	switch {
	case s.Type != "":
		return s.Type
	case len(s.Types) > 0:
		return s.Types[0]
	case s.Ref != "":
		return s.Ref
	}
	return "any"
}
