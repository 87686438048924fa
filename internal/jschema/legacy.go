// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"encoding/json"
	"strings"
)

// legacyPrefix marks draft-03/04 keyword forms that jsonschema.Schema cannot
// hold in its typed fields. They travel in Schema.Extra under the prefixed
// name and get their original name back on Marshal.
const legacyPrefix = "x-legacy-"

// legacyBoolKeywords are keywords whose draft-03/04 form is a boolean while
// later drafts use a number or a list.
var legacyBoolKeywords = []string{"exclusiveMinimum", "exclusiveMaximum", "required"}

// subschemaMaps name keywords whose value is an object of schemas.
var subschemaMaps = []string{
	"properties", "patternProperties", "definitions", "$defs",
	"dependentSchemas", "dependencies",
}

// subschemaKeywords name keywords whose value is a schema or a list of schemas.
var subschemaKeywords = []string{
	"items", "additionalItems", "additionalProperties", "prefixItems",
	"contains", "not", "allOf", "anyOf", "oneOf", "if", "then", "else",
	"propertyNames", "unevaluatedItems", "unevaluatedProperties", "extends",
}

// hideLegacy renames boolean draft-03/04 keywords in every schema of doc.
// It returns data unchanged when none is present.
func hideLegacy(data []byte) ([]byte, error) {
	if !bytes.Contains(data, []byte(`"exclusiveM`)) && !bytes.Contains(data, []byte(`"required"`)) {
		return data, nil
	}
	doc, err := decodeGeneric(data)
	if err != nil {
		return nil, err
	}
	if !renameLegacy(doc) {
		return data, nil
	}
	return json.Marshal(doc)
}

func renameLegacy(node any) bool {
	obj, ok := node.(map[string]any)
	if !ok {
		return false
	}
	changed := false
	for _, kw := range legacyBoolKeywords {
		if v, ok := obj[kw].(bool); ok {
			delete(obj, kw)
			obj[legacyPrefix+kw] = v
			changed = true
		}
	}
	for _, kw := range subschemaMaps {
		if m, ok := obj[kw].(map[string]any); ok {
			for _, sub := range m {
				changed = renameLegacy(sub) || changed
			}
		}
	}
	for _, kw := range subschemaKeywords {
		switch v := obj[kw].(type) {
		case map[string]any:
			changed = renameLegacy(v) || changed
		case []any:
			for _, sub := range v {
				changed = renameLegacy(sub) || changed
			}
		}
	}
	return changed
}

// restoreLegacy undoes hideLegacy on marshaled schema JSON.
func restoreLegacy(data []byte) ([]byte, error) {
	if !bytes.Contains(data, []byte(`"`+legacyPrefix)) {
		return data, nil
	}
	doc, err := decodeGeneric(data)
	if err != nil {
		return nil, err
	}
	restoreKeys(doc)
	return json.Marshal(doc)
}

func restoreKeys(node any) {
	switch v := node.(type) {
	case map[string]any:
		for k, sub := range v {
			if name, ok := strings.CutPrefix(k, legacyPrefix); ok {
				delete(v, k)
				v[name] = sub
			}
			restoreKeys(sub)
		}
	case []any:
		for _, sub := range v {
			restoreKeys(sub)
		}
	}
}

func decodeGeneric(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
