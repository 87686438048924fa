// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package datashape provides the DataShape value type that describes data at
// a pipeline step boundary, together with its variant bookkeeping and the
// specification codec.
package datashape

import (
	"maps"
	"slices"
)

// Kind identifies the dialect of a shape's specification.
type Kind string

// Known shape kinds. Any other value is carried through untouched.
const (
	KindAny                Kind = "any"
	KindJava               Kind = "java"
	KindJSONSchema         Kind = "json-schema"
	KindJSONInstance       Kind = "json-instance"
	KindXMLSchema          Kind = "xml-schema"
	KindXMLSchemaInspected Kind = "xml-schema-inspected"
	KindXMLInstance        Kind = "xml-instance"
	KindNone               Kind = "none"
)

// Metadata keys with a reserved meaning.
const (
	// MetaVariant marks the role a shape plays: VariantElement or VariantCollection.
	MetaVariant = "variant"
	// MetaCompression names the codec the specification is stored with.
	MetaCompression = "compression"
)

// Values of MetaVariant.
const (
	VariantElement    = "element"
	VariantCollection = "collection"
)

// NoShape is the sentinel for an unknown shape.
var NoShape = DataShape{Kind: KindNone}

// DataShape describes the schema or an example of the data flowing in or out
// of a step. It is a value type: the With* helpers return modified copies and
// never touch the receiver's metadata map or variant slice.
type DataShape struct {
	Name          string            `yaml:"name,omitempty" json:"name,omitempty"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
	Kind          Kind              `yaml:"kind" json:"kind"`
	Type          string            `yaml:"type,omitempty" json:"type,omitempty"`
	Specification string            `yaml:"specification,omitempty" json:"specification,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Variants      []DataShape       `yaml:"variants,omitempty" json:"variants,omitempty"`
}

// Equal reports whether two shapes have the same kind, specification and
// metadata. Variants and descriptive fields are ignored.
func (d DataShape) Equal(o DataShape) bool {
	if d.Kind != o.Kind || d.Specification != o.Specification {
		return false
	}
	// nil and empty maps compare equal
	return maps.Equal(d.Metadata, o.Metadata)
}

// IsNone reports whether d is the unknown-shape sentinel.
func (d DataShape) IsNone() bool {
	return d.Kind == KindNone && d.Specification == ""
}

// VariantTag returns the value of the variant metadata key, or "".
func (d DataShape) VariantTag() string {
	return d.Metadata[MetaVariant]
}

// FindVariant returns the first variant whose metadata key holds value.
func (d DataShape) FindVariant(key, value string) (DataShape, bool) {
	for _, v := range d.Variants {
		if got, ok := v.Metadata[key]; ok && got == value {
			return v, true
		}
	}
	return DataShape{}, false
}

// WithKind returns a copy of d with the given kind.
func (d DataShape) WithKind(kind Kind) DataShape {
	c := d.clone()
	c.Kind = kind
	return c
}

// WithSpecification returns a copy of d with the given specification.
func (d DataShape) WithSpecification(spec string) DataShape {
	c := d.clone()
	c.Specification = spec
	return c
}

// WithMetadata returns a copy of d with key set to value.
func (d DataShape) WithMetadata(key, value string) DataShape {
	c := d.clone()
	if c.Metadata == nil {
		c.Metadata = make(map[string]string, 1)
	}
	c.Metadata[key] = value
	return c
}

// WithoutMetadata returns a copy of d with key removed.
func (d DataShape) WithoutMetadata(key string) DataShape {
	c := d.clone()
	delete(c.Metadata, key)
	if len(c.Metadata) == 0 {
		c.Metadata = nil
	}
	return c
}

// WithVariants returns a copy of d whose variant list is replaced by vs.
func (d DataShape) WithVariants(vs ...DataShape) DataShape {
	c := d.clone()
	c.Variants = nil
	return c.AddVariants(vs...)
}

// AddVariants returns a copy of d with vs appended to its variants. Entries
// equal to d, or to a variant already present, are skipped. Appended variants
// are flattened so no nested chains are stored.
func (d DataShape) AddVariants(vs ...DataShape) DataShape {
	c := d.clone()
	for _, v := range vs {
		if v.Equal(c) {
			continue
		}
		if slices.ContainsFunc(c.Variants, v.Equal) {
			continue
		}
		c.Variants = append(c.Variants, v.Flat())
	}
	return c
}

// Flat returns a copy of d without variants.
func (d DataShape) Flat() DataShape {
	c := d.clone()
	c.Variants = nil
	return c
}

func (d DataShape) clone() DataShape {
	c := d
	c.Metadata = maps.Clone(d.Metadata)
	c.Variants = slices.Clone(d.Variants)
	return c
}
