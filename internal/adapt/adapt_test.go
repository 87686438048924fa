// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package adapt

import (
	"testing"

	"github.com/dacolabs/shapes/internal/datashape"
	"github.com/dacolabs/shapes/internal/jschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const draft07 = "http://json-schema.org/draft-07/schema#"

func schemaShape(spec string, meta ...string) datashape.DataShape {
	d := datashape.DataShape{Kind: datashape.KindJSONSchema, Specification: spec}
	for i := 0; i+1 < len(meta); i += 2 {
		d = d.WithMetadata(meta[i], meta[i+1])
	}
	return d
}

func instanceShape(spec string, meta ...string) datashape.DataShape {
	d := schemaShape(spec, meta...)
	return d.WithKind(datashape.KindJSONInstance)
}

func collectionVariant(t *testing.T, d datashape.DataShape) datashape.DataShape {
	t.Helper()
	v, ok := d.FindVariant(datashape.MetaVariant, datashape.VariantCollection)
	require.True(t, ok, "expected a collection variant")
	return v
}

func elementVariant(t *testing.T, d datashape.DataShape) datashape.DataShape {
	t.Helper()
	v, ok := d.FindVariant(datashape.MetaVariant, datashape.VariantElement)
	require.True(t, ok, "expected an element variant")
	return v
}

func TestToElement_SchemaArray(t *testing.T) {
	coll := schemaShape(
		`{"$schema":"`+draft07+`","type":"array","items":{"type":"object","properties":{"id":{"type":"integer"}}}}`,
		datashape.MetaVariant, datashape.VariantCollection,
		"source", "orders",
	)

	got, err := ToElement(coll)
	require.NoError(t, err)

	assert.Equal(t, datashape.VariantElement, got.VariantTag())
	assert.Equal(t, "orders", got.Metadata["source"])
	assert.JSONEq(t, `{"$schema":"`+draft07+`","type":"object","properties":{"id":{"type":"integer"}}}`, got.Specification)
	assert.True(t, collectionVariant(t, got).Equal(coll))
}

func TestToElement_SchemaObject(t *testing.T) {
	d := schemaShape(`{"type":"object"}`)

	got, err := ToElement(d)
	require.NoError(t, err)

	assert.Equal(t, datashape.VariantElement, got.VariantTag())
	assert.Equal(t, d.Specification, got.Specification)
	assert.Empty(t, got.Variants)
}

func TestToElement_SchemaArrayWithoutSingleItems(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"no items", `{"type":"array"}`},
		{"tuple items", `{"type":"array","items":[{"type":"string"},{"type":"integer"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := schemaShape(tt.spec)
			got, err := ToElement(d)
			require.NoError(t, err)
			assert.Equal(t, d, got)
		})
	}
}

func TestToElement_InstanceArray(t *testing.T) {
	d := instanceShape(`["a","b"]`)

	got, err := ToElement(d)
	require.NoError(t, err)

	assert.Equal(t, `"a"`, got.Specification)
	assert.Equal(t, datashape.VariantElement, got.VariantTag())
	assert.Equal(t, `["a","b"]`, collectionVariant(t, got).Specification)
}

func TestToElement_InstanceArrayOfObjects(t *testing.T) {
	d := instanceShape(`[ {"id": 1, "tags": ["x"]}, {"id": 2} ]`)

	got, err := ToElement(d)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"tags":["x"]}`, got.Specification)
}

func TestToElement_InstanceEmptyArray(t *testing.T) {
	d := instanceShape(`[]`)

	got, err := ToElement(d)
	require.NoError(t, err)

	assert.Equal(t, `[]`, got.Specification)
	assert.Equal(t, datashape.VariantElement, got.VariantTag())
}

func TestToElement_InstanceObject(t *testing.T) {
	d := instanceShape(`{"id":1}`)

	got, err := ToElement(d)
	require.NoError(t, err)

	assert.Equal(t, `{"id":1}`, got.Specification)
	assert.Equal(t, datashape.VariantElement, got.VariantTag())
}

func TestToElement_Passthrough(t *testing.T) {
	tests := []struct {
		name  string
		shape datashape.DataShape
	}{
		{"empty specification", schemaShape("")},
		{"java", datashape.DataShape{Kind: datashape.KindJava, Type: "io.example.Order"}},
		{"xml schema", datashape.DataShape{Kind: datashape.KindXMLSchema, Specification: "<xs:schema/>"}},
		{"unknown kind", datashape.DataShape{Kind: "csv-instance", Specification: "a,b"}},
		{"no shape", datashape.NoShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToElement(tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, got)
		})
	}
}

func TestToElement_ParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		shape datashape.DataShape
	}{
		{"schema", schemaShape(`{"type":`)},
		{"instance", instanceShape(`[1,`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToElement(tt.shape)
			assert.ErrorIs(t, err, ErrParse)
			assert.Equal(t, tt.shape, got)
		})
	}
}

func TestToElement_UsesCollectionVariant(t *testing.T) {
	coll := instanceShape(`[{"id":1}]`, datashape.MetaVariant, datashape.VariantCollection)
	java := datashape.DataShape{Kind: datashape.KindJava, Type: "io.example.Orders"}
	d := java.WithVariants(coll)

	got, err := ToElement(d)
	require.NoError(t, err)

	assert.Equal(t, datashape.KindJSONInstance, got.Kind)
	assert.Equal(t, `{"id":1}`, got.Specification)
	require.Len(t, got.Variants, 2)
	assert.True(t, got.Variants[0].Equal(coll))
	assert.True(t, got.Variants[1].Equal(java))
}

func TestToElement_SelectsElementVariant(t *testing.T) {
	elem := instanceShape(`{"id":1}`, datashape.MetaVariant, datashape.VariantElement)
	java := datashape.DataShape{Kind: datashape.KindJava, Type: "io.example.Order"}
	d := instanceShape(`[{"id":1}]`, datashape.MetaVariant, datashape.VariantCollection).WithVariants(elem, java)

	got, err := ToElement(d)
	require.NoError(t, err)

	assert.True(t, got.Equal(elem))
	require.Len(t, got.Variants, 2)
	assert.True(t, got.Variants[0].Equal(d))
	assert.Empty(t, got.Variants[0].Variants)
	assert.True(t, got.Variants[1].Equal(java))
}

func TestToElement_Idempotent(t *testing.T) {
	shapes := []datashape.DataShape{
		schemaShape(`{"type":"array","items":{"type":"string"}}`),
		schemaShape(`{"type":"object"}`),
		instanceShape(`[1,2,3]`),
		instanceShape(`{"a":true}`),
		instanceShape(`[]`),
	}

	for _, d := range shapes {
		once, err := ToElement(d)
		require.NoError(t, err)
		twice, err := ToElement(once)
		require.NoError(t, err)

		assert.True(t, once.Equal(twice))
		assert.Equal(t, once.Variants, twice.Variants)
	}
}

func TestToElement_SchemaRoundTrip(t *testing.T) {
	item := `{"$schema":"` + draft07 + `","type":"object","properties":{"name":{"type":"string"}}}`
	elem := schemaShape(item)

	coll, err := ToCollection(elem)
	require.NoError(t, err)
	back, err := ToElement(coll)
	require.NoError(t, err)

	assert.JSONEq(t, item, back.Specification)
	assert.Equal(t, datashape.VariantElement, back.VariantTag())
	assert.True(t, collectionVariant(t, back).Equal(coll))
}

func TestToCollection_SchemaObject(t *testing.T) {
	d := schemaShape(`{"$schema":"`+draft07+`","type":"object","required":["id"],"properties":{"id":{"type":"integer"}}}`, "source", "orders")

	got, err := ToCollection(d)
	require.NoError(t, err)

	assert.Equal(t, datashape.VariantCollection, got.VariantTag())
	assert.Equal(t, "orders", got.Metadata["source"])

	s, err := jschema.Parse(got.Specification)
	require.NoError(t, err)
	assert.Equal(t, draft07, s.Schema)
	assert.Equal(t, "array", s.Type)
	items, ok := jschema.SingleItems(s)
	require.True(t, ok)
	assert.Empty(t, items.Schema)
	assert.Equal(t, []string{"id"}, items.Required)

	elem := elementVariant(t, got)
	assert.Equal(t, d.Specification, elem.Specification)
}

func TestToCollection_SchemaWithoutDialect(t *testing.T) {
	got, err := ToCollection(schemaShape(`{"type":"string"}`))
	require.NoError(t, err)

	s, err := jschema.Parse(got.Specification)
	require.NoError(t, err)
	assert.Equal(t, jschema.DefaultDialect, s.Schema)
}

func TestToCollection_SchemaArray(t *testing.T) {
	d := schemaShape(`{"type":"array","items":{"type":"string"}}`)

	got, err := ToCollection(d)
	require.NoError(t, err)

	assert.Equal(t, d.Specification, got.Specification)
	assert.Equal(t, datashape.VariantCollection, got.VariantTag())
	assert.Empty(t, got.Variants)
}

func TestToCollection_Instance(t *testing.T) {
	t.Run("object is wrapped", func(t *testing.T) {
		d := instanceShape(`{"id":1}`)

		got, err := ToCollection(d)
		require.NoError(t, err)

		assert.Equal(t, `[{"id":1}]`, got.Specification)
		assert.Equal(t, datashape.VariantCollection, got.VariantTag())
		assert.Equal(t, `{"id":1}`, elementVariant(t, got).Specification)
	})

	t.Run("array is retagged", func(t *testing.T) {
		got, err := ToCollection(instanceShape(`[1,2]`))
		require.NoError(t, err)

		assert.Equal(t, `[1,2]`, got.Specification)
		assert.Equal(t, datashape.VariantCollection, got.VariantTag())
	})
}

func TestToCollection_SelectsCollectionVariant(t *testing.T) {
	coll := instanceShape(`[1]`, datashape.MetaVariant, datashape.VariantCollection)
	d := instanceShape(`1`, datashape.MetaVariant, datashape.VariantElement).WithVariants(coll)

	got, err := ToCollection(d)
	require.NoError(t, err)

	assert.True(t, got.Equal(coll))
	require.Len(t, got.Variants, 1)
	assert.True(t, got.Variants[0].Equal(d))
	assert.Equal(t, datashape.VariantElement, got.Variants[0].VariantTag())
}

func TestToCollection_Idempotent(t *testing.T) {
	shapes := []datashape.DataShape{
		schemaShape(`{"type":"object"}`),
		schemaShape(`{"type":"array","items":{"type":"string"}}`),
		instanceShape(`{"a":1}`),
		instanceShape(`[1]`),
	}

	for _, d := range shapes {
		once, err := ToCollection(d)
		require.NoError(t, err)
		twice, err := ToCollection(once)
		require.NoError(t, err)

		assert.True(t, once.Equal(twice))
	}
}

func TestToCollection_ParseErrors(t *testing.T) {
	d := instanceShape(`{"a":`)
	got, err := ToCollection(d)
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, d, got)
}

func TestToCollection_Passthrough(t *testing.T) {
	d := datashape.DataShape{Kind: datashape.KindXMLInstance, Specification: "<order/>"}
	got, err := ToCollection(d)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

const draft04Item = `{"type":"object","properties":{"n":{"type":"number","minimum":0,"exclusiveMinimum":true}}}`

func TestToElement_Draft04Schema(t *testing.T) {
	coll := schemaShape(`{"$schema":"http://json-schema.org/draft-04/schema#","type":"array","items":` + draft04Item + `}`)

	got, err := ToElement(coll)
	require.NoError(t, err)

	assert.Equal(t, datashape.VariantElement, got.VariantTag())
	assert.JSONEq(t, `{"$schema":"http://json-schema.org/draft-04/schema#","type":"object","properties":{"n":{"type":"number","minimum":0,"exclusiveMinimum":true}}}`, got.Specification)
	assert.Equal(t, coll.Specification, collectionVariant(t, got).Specification)
}

func TestToCollection_Draft04Schema(t *testing.T) {
	elem := schemaShape(draft04Item)

	got, err := ToCollection(elem)
	require.NoError(t, err)

	assert.Equal(t, datashape.VariantCollection, got.VariantTag())
	assert.JSONEq(t, `{"$schema":"`+jschema.DefaultDialect+`","type":"array","items":`+draft04Item+`}`, got.Specification)
	assert.NotContains(t, got.Specification, "x-legacy-")
}
