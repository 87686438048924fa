// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package adapt converts data shapes between their single element and
// collection representations.
//
// ToElement and ToCollection are pure: the same input always yields the same
// output, and the input is never modified. Kinds other than json-schema and
// json-instance are returned unchanged, as are shapes whose structure gives
// nothing to extract. An error is only returned when a specification cannot
// be parsed; callers decide how to fall back.
package adapt

import (
	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/jschema"
)

// ToElement returns the single element form of d. A shape already tagged
// element is returned as is, even when it carries another element variant.
func ToElement(d datashape.DataShape) (datashape.DataShape, error) {
	if d.VariantTag() == datashape.VariantElement {
		return d, nil
	}
	if elem, ok := d.FindVariant(datashape.MetaVariant, datashape.VariantElement); ok {
		if d.Equal(elem) {
			return elem, nil
		}
		return elem.AddVariants(datashape.ExtractVariants(d, elem, datashape.VariantElement)...), nil
	}

	coll, ok := d.FindVariant(datashape.MetaVariant, datashape.VariantCollection)
	if !ok {
		coll = d
	}
	if coll.Specification == "" {
		return d, nil
	}

	derive := func(spec string) datashape.DataShape {
		return coll.
			WithMetadata(datashape.MetaVariant, datashape.VariantElement).
			WithSpecification(spec).
			AddVariants(datashape.ExtractVariants(d, coll, datashape.VariantCollection)...)
	}
	retag := func() datashape.DataShape {
		return coll.WithMetadata(datashape.MetaVariant, datashape.VariantElement)
	}

	switch coll.Kind {
	case datashape.KindJSONSchema:
		schema, err := jschema.Parse(coll.Specification)
		if err != nil {
			return d, err
		}
		if !jschema.IsArray(schema) {
			return retag(), nil
		}
		elem, ok := jschema.ElementOf(schema)
		if !ok {
			return d, nil
		}
		spec, err := jschema.Marshal(elem)
		if err != nil {
			return d, err
		}
		return derive(spec), nil

	case datashape.KindJSONInstance:
		items, isArray, err := parseInstance(coll.Specification)
		if err != nil {
			return d, err
		}
		if !isArray || len(items) == 0 {
			return retag(), nil
		}
		first, err := compact(items[0])
		if err != nil {
			return d, err
		}
		return derive(first), nil
	}

	return d, nil
}

// ToCollection returns the collection form of d. A shape already tagged
// collection is returned as is, even when it carries another collection variant.
func ToCollection(d datashape.DataShape) (datashape.DataShape, error) {
	if d.VariantTag() == datashape.VariantCollection {
		return d, nil
	}
	if coll, ok := d.FindVariant(datashape.MetaVariant, datashape.VariantCollection); ok {
		if d.Equal(coll) {
			return coll, nil
		}
		return coll.AddVariants(datashape.ExtractVariants(d, coll, datashape.VariantCollection)...), nil
	}

	elem, ok := d.FindVariant(datashape.MetaVariant, datashape.VariantElement)
	if !ok {
		elem = d
	}
	if elem.Specification == "" {
		return d, nil
	}

	derive := func(spec string) datashape.DataShape {
		return elem.
			WithMetadata(datashape.MetaVariant, datashape.VariantCollection).
			WithSpecification(spec).
			AddVariants(datashape.ExtractVariants(d, elem, datashape.VariantElement)...)
	}
	retag := func() datashape.DataShape {
		return elem.WithMetadata(datashape.MetaVariant, datashape.VariantCollection)
	}

	switch elem.Kind {
	case datashape.KindJSONSchema:
		schema, err := jschema.Parse(elem.Specification)
		if err != nil {
			return d, err
		}
		if jschema.IsArray(schema) {
			return retag(), nil
		}
		spec, err := jschema.Marshal(jschema.ArrayOf(schema))
		if err != nil {
			return d, err
		}
		return derive(spec), nil

	case datashape.KindJSONInstance:
		_, isArray, err := parseInstance(elem.Specification)
		if err != nil {
			return d, err
		}
		if isArray {
			return retag(), nil
		}
		return derive("[" + elem.Specification + "]"), nil
	}

	return d, nil
}
