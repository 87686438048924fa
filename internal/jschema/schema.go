// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema provides JSON Schema parsing, serialization, and the
// structural helpers used to move between element and array schemas.
package jschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// DefaultDialect is stamped on array wrappers built from schemas that
// declare no $schema of their own.
const DefaultDialect = "http://json-schema.org/schema#"

// ErrParse indicates a specification is not a valid JSON document.
var ErrParse = errors.New("parse error")

// Parse decodes a JSON Schema document. Draft-03/04 boolean forms of
// exclusiveMinimum, exclusiveMaximum and required are kept in Schema.Extra
// and written back by Marshal.
func Parse(spec string) (*jsonschema.Schema, error) {
	data, err := hideLegacy([]byte(spec))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &s, nil
}

// Marshal encodes a schema as compact JSON.
func Marshal(s *jsonschema.Schema) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to serialize schema: %w", err)
	}
	if data, err = restoreLegacy(data); err != nil {
		return "", fmt.Errorf("failed to serialize schema: %w", err)
	}
	return string(data), nil
}

// IsArray reports whether s declares the array type.
func IsArray(s *jsonschema.Schema) bool {
	if s == nil {
		return false
	}
	return s.Type == "array" || slices.Contains(s.Types, "array")
}

// SingleItems returns the item schema of an array schema that uses the
// single-schema form of "items". Tuple forms report false.
func SingleItems(s *jsonschema.Schema) (*jsonschema.Schema, bool) {
	if !IsArray(s) || s.Items == nil || len(s.ItemsArray) > 0 || len(s.PrefixItems) > 0 {
		return nil, false
	}
	return s.Items, true
}

// ElementOf extracts the single item schema of an array schema and carries the
// array's $schema over to it. The input is not modified.
func ElementOf(s *jsonschema.Schema) (*jsonschema.Schema, bool) {
	items, ok := SingleItems(s)
	if !ok {
		return nil, false
	}
	elem := items.CloneSchemas()
	elem.Schema = s.Schema
	return elem, true
}

// ArrayOf builds an array schema around item. The $schema of item moves to
// the wrapper; when item has none, DefaultDialect is used. The input is not
// modified.
func ArrayOf(item *jsonschema.Schema) *jsonschema.Schema {
	elem := item.CloneSchemas()
	dialect := elem.Schema
	if dialect == "" {
		dialect = DefaultDialect
	}
	elem.Schema = ""
	return &jsonschema.Schema{
		Schema: dialect,
		Type:   "array",
		Items:  elem,
	}
}
