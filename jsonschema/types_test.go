package jsonschema_test

import (
	"testing"

	"github.com/speakeasy-api/datamapper/document"
	"github.com/speakeasy-api/datamapper/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTypeString_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected document.Types
	}{
		{input: "string", expected: document.StringType},
		{input: "number", expected: document.NumericType},
		{input: "integer", expected: document.IntegerType},
		{input: "boolean", expected: document.BooleanType},
		{input: "object", expected: document.ContainerType},
		{input: "array", expected: document.ArrayType},
		{input: "null", expected: document.AnyType},
		{input: "", expected: document.AnyType},
		{input: "String", expected: document.AnyType},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, jsonschema.FromTypeString(tt.input))
		})
	}
}

func TestToTypeString_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"string", "number", "integer", "boolean", "object", "array"} {
		assert.Equal(t, s, jsonschema.ToTypeString(jsonschema.FromTypeString(s)))
	}
	assert.Empty(t, jsonschema.ToTypeString(document.AnyType))
}

func TestParseTypeOverride_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected document.Types
	}{
		{input: "STRING", expected: document.StringType},
		{input: " Integer ", expected: document.IntegerType},
		{input: "Object", expected: document.ContainerType},
		{input: "#/definitions/Address", expected: document.ContainerType},
		{input: "#/$defs/anything", expected: document.ContainerType},
		{input: "date", expected: document.AnyType},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, jsonschema.ParseTypeOverride(tt.input))
		})
	}
}

func TestClassifyOverrideVariant_Success(t *testing.T) {
	t.Parallel()

	assert.Equal(t, jsonschema.TypeOverrideSafe, jsonschema.ClassifyOverrideVariant(document.AnyType))
	for _, typ := range []document.Types{document.StringType, document.NumericType, document.ContainerType, document.ArrayType} {
		assert.Equal(t, jsonschema.TypeOverrideForce, jsonschema.ClassifyOverrideVariant(typ), "overriding %s should be forced", typ)
	}
}

func TestApplyTypeOverride_Success(t *testing.T) {
	t.Parallel()

	result, err := jsonschema.CreateDocument(&document.DocumentDefinition{
		Name: "Body",
		DefinitionFiles: map[string]string{
			"order.json": `{
				"type": "object",
				"properties": {
					"payload": {},
					"count": {"type": "string"}
				},
				"definitions": {"Line": {"type": "object", "properties": {"sku": {"type": "string"}}}},
				"allOf": [{"properties": {"line": {"$ref": "#/definitions/Line"}}}]
			}`,
		},
	})
	require.NoError(t, err)
	require.Equal(t, jsonschema.ValidationStatusSuccess, result.ValidationStatus)

	root := result.Document.Fields[0]
	payload := root.FindField("payload")
	require.NotNil(t, payload)

	override, err := jsonschema.ApplyTypeOverride(result.Document, payload, "#/definitions/Line")
	require.NoError(t, err)
	assert.Equal(t, jsonschema.TypeOverrideSafe, override.Variant)
	assert.Equal(t, document.ContainerType, payload.Type)
	assert.Equal(t, []string{"#/definitions/Line"}, payload.NamedTypeFragmentRefs)
	assert.Equal(t, "/xf:map/xf:map[@key='payload']", override.Path)

	count := root.FindField("count")
	override, err = jsonschema.ApplyTypeOverride(result.Document, count, "integer")
	require.NoError(t, err)
	assert.Equal(t, jsonschema.TypeOverrideForce, override.Variant)
	assert.Equal(t, document.StringType, override.OriginalType)
	assert.Equal(t, document.IntegerType, count.Type)

	override, err = jsonschema.ApplyTypeOverride(result.Document, count, "boolean")
	require.NoError(t, err)
	assert.Equal(t, document.StringType, override.OriginalType, "the first original type should be kept")
	assert.Equal(t, jsonschema.TypeOverrideForce, override.Variant)

	line := root.FindField("line")
	require.NotNil(t, line)
	_, err = jsonschema.ApplyTypeOverride(result.Document, line, "string")
	require.NoError(t, err)
	assert.Empty(t, line.NamedTypeFragmentRefs, "a primitive override should drop fragment references")
}

func TestApplyTypeOverride_Error(t *testing.T) {
	t.Parallel()

	doc := document.NewJSONSchemaDocument(nil)
	field := document.NewJSONSchemaField(nil, "a", document.StringType)

	tests := []struct {
		name     string
		doc      *document.JSONSchemaDocument
		field    *document.JSONSchemaField
		override string
	}{
		{name: "nil field", doc: doc, field: nil, override: "string"},
		{name: "unknown type", doc: doc, field: field, override: "date"},
		{name: "unknown fragment", doc: doc, field: field, override: "#/definitions/Missing"},
		{name: "fragment without document", doc: nil, field: field, override: "#/definitions/Line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := jsonschema.ApplyTypeOverride(tt.doc, tt.field, tt.override)
			require.Error(t, err)
			assert.ErrorIs(t, err, jsonschema.ErrInvalidTypeOverride)
			if tt.field != nil {
				assert.Nil(t, tt.field.OriginalType, "a rejected override should not touch the field")
				assert.Equal(t, document.StringType, tt.field.Type)
			}
		})
	}
}
