package jsonschema

import (
	"strings"

	"github.com/speakeasy-api/datamapper/references"
)

// JSONSchemaReference identifies a schema fragment: the file it lives in and the JSON pointer within that file.
type JSONSchemaReference struct {
	Schema *SchemaMetadata
	// Path is the fragment within Schema, always starting with "#".
	Path string
	// External is set when Schema is not the document's primary file.
	External bool
}

// NewJSONSchemaReference creates a reference to the fragment of schema addressed by localPart, the text after "#".
func NewJSONSchemaReference(schema *SchemaMetadata, localPart string, external bool) JSONSchemaReference {
	return JSONSchemaReference{
		Schema:   schema,
		Path:     "#" + strings.TrimPrefix(localPart, "#"),
		External: external,
	}
}

// FullPath is the key of the fragment in a document. Fragments of the primary file are keyed by their pointer alone,
// fragments of other files are prefixed with the file's identifier.
func (r JSONSchemaReference) FullPath() string {
	if r.External && r.Schema != nil {
		return r.Schema.Identifier + r.Path
	}
	return r.Path
}

// Resolve returns the schema the reference addresses.
func (r JSONSchemaReference) Resolve() (*Schema, error) {
	if r.Schema == nil {
		return nil, ErrUnresolvedReference.Wrapf("%s: no schema", r.Path)
	}
	return r.Schema.ExtractSubSchema(string(references.Reference(r.Path).GetJSONPointer()))
}
