package document_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/speakeasy-api/datamapper/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchemaField_Expression_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		typ      document.Types
		expected string
	}{
		{name: "root string", key: "", typ: document.StringType, expected: "xf:string"},
		{name: "keyed map", key: "customer", typ: document.ContainerType, expected: "xf:map[@key='customer']"},
		{name: "keyed integer", key: "age", typ: document.IntegerType, expected: "xf:number[@key='age']"},
		{name: "array item", key: "", typ: document.ArrayType, expected: "xf:array"},
		{name: "any type", key: "x", typ: document.AnyType, expected: "xf:*[@key='x']"},
		{name: "quote in key", key: "it's", typ: document.BooleanType, expected: "xf:boolean[@key='it''s']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := document.NewJSONSchemaField(nil, tt.key, tt.typ)
			assert.Equal(t, tt.expected, f.GetExpression())
			assert.Equal(t, document.FieldKindJSONSchema, f.Kind())
		})
	}
}

func TestJSONSchemaField_Path_Success(t *testing.T) {
	t.Parallel()

	root := document.NewJSONSchemaField(nil, "", document.ContainerType)
	items := document.NewJSONSchemaField(root, "items", document.ArrayType)
	root.AddField(items)
	item := document.NewJSONSchemaField(items, "", document.StringType)
	items.AddField(item)

	assert.Equal(t, "/xf:map/xf:array[@key='items']/xf:string", item.GetPath())
	assert.Same(t, items, item.GetParent())
}

func TestJSONSchemaField_Adopt_Success(t *testing.T) {
	t.Parallel()

	placeholder := document.NewJSONSchemaField(nil, "address", document.AnyType)
	child := document.NewJSONSchemaField(placeholder, "street", document.StringType)
	placeholder.AddField(child)
	placeholder.AddNamedTypeFragmentRef("#/definitions/Address")
	placeholder.AddNamedTypeFragmentRef("#/definitions/Address")

	upgraded := document.NewJSONSchemaField(nil, "address", document.ContainerType)
	upgraded.Adopt(placeholder)

	require.Len(t, upgraded.Fields, 1)
	assert.Same(t, upgraded, upgraded.Fields[0].GetParent(), "adopted child should point to its new parent")
	assert.Equal(t, []string{"#/definitions/Address"}, upgraded.NamedTypeFragmentRefs)
}

func TestFieldList_ReplaceField_Success(t *testing.T) {
	t.Parallel()

	var list document.FieldList
	a := document.NewJSONSchemaField(nil, "a", document.AnyType)
	b := document.NewJSONSchemaField(nil, "b", document.StringType)
	list.AddField(a)
	list.AddField(b)

	replacement := document.NewJSONSchemaField(nil, "a", document.ContainerType)
	assert.True(t, list.ReplaceField(a, replacement))
	assert.Same(t, replacement, list.FindField("a"))
	assert.Same(t, replacement, list.Fields[0], "replacement should keep position")
	assert.False(t, list.ReplaceField(a, replacement), "old field is no longer present")
	assert.Nil(t, list.FindField("missing"))
}

func TestJSONSchemaDocument_ResolveChildren_Success(t *testing.T) {
	t.Parallel()

	doc := document.NewJSONSchemaDocument(&document.DocumentDefinition{Name: "Body", DocumentType: document.DocumentTypeSourceBody})

	address := &document.TypeFragment{Type: document.ContainerType}
	address.AddField(document.NewJSONSchemaField(nil, "street", document.StringType))
	address.AddNamedTypeFragmentRef("#/definitions/Base")
	base := &document.TypeFragment{Type: document.ContainerType}
	base.AddField(document.NewJSONSchemaField(nil, "id", document.StringType))
	base.AddField(document.NewJSONSchemaField(nil, "street", document.IntegerType))
	base.AddNamedTypeFragmentRef("#/definitions/Address")
	doc.NamedTypeFragments.Set("#/definitions/Address", address)
	doc.NamedTypeFragments.Set("#/definitions/Base", base)

	field := document.NewJSONSchemaField(nil, "home", document.AnyType)
	field.AddField(document.NewJSONSchemaField(field, "note", document.StringType))
	field.AddNamedTypeFragmentRef("#/definitions/Address")

	children := doc.ResolveChildren(field)

	keys := []string{}
	for _, c := range children {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"note", "street", "id"}, keys)
	assert.Equal(t, document.StringType, children[1].Type, "first street definition should win")
	assert.Equal(t, "Body", doc.DocumentID)
}

func TestJSONSchemaDocument_Walk_Success(t *testing.T) {
	t.Parallel()

	doc := document.NewJSONSchemaDocument(nil)
	root := document.NewJSONSchemaField(nil, "", document.ContainerType)
	root.AddField(document.NewJSONSchemaField(root, "a", document.StringType))
	doc.AddField(root)
	fragment := &document.TypeFragment{Type: document.ContainerType}
	fragment.AddField(document.NewJSONSchemaField(nil, "b", document.StringType))
	doc.NamedTypeFragments.Set("#/definitions/B", fragment)

	keys := []string{}
	for f := range doc.Walk() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"", "a", "b"}, keys)
	assert.Len(t, doc.RootFields(), 1)
}

func TestJSONSchemaDocument_MarshalJSON_Success(t *testing.T) {
	t.Parallel()

	doc := document.NewJSONSchemaDocument(&document.DocumentDefinition{Name: "Body"})
	doc.AddField(document.NewJSONSchemaField(nil, "", document.StringType))

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"String"`)
	assert.Contains(t, string(data), `"documentId":"Body"`)
}

func TestPrimitiveDocument_Success(t *testing.T) {
	t.Parallel()

	doc := document.NewPrimitiveDocument(&document.DocumentDefinition{Name: "orderId", DocumentType: document.DocumentTypeParam})

	fields := doc.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, document.FieldKindPrimitive, fields[0].Kind())
	assert.Equal(t, "orderId", fields[0].GetName())
	assert.Equal(t, ".", fields[0].GetExpression())
}

func TestDocumentDefinition_FilePaths_Success(t *testing.T) {
	t.Parallel()

	def := &document.DocumentDefinition{DefinitionFiles: map[string]string{"b.json": "{}", "a.json": "{}"}}
	assert.True(t, slices.Equal([]string{"a.json", "b.json"}, def.FilePaths()))

	var nilDef *document.DocumentDefinition
	assert.Nil(t, nilDef.FilePaths())
}

func TestTypes_String_Success(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Container", document.ContainerType.String())
	assert.Equal(t, "Types(42)", document.Types(42).String())
	assert.False(t, document.AnyType.IsConcrete())
	assert.True(t, document.ArrayType.IsConcrete())
	assert.Equal(t, int64(9007199254740991), document.Unbounded)
}
