package document

import (
	"iter"

	"github.com/speakeasy-api/datamapper/sequencedmap"
)

// JSONSchemaDocument is the field tree built from one or more JSON schema files.
type JSONSchemaDocument struct {
	FieldList

	DocumentType DocumentType `json:"documentType"`
	DocumentID   string       `json:"documentId"`
	// NamedTypeFragments maps a fragment reference such as "#/definitions/Address"
	// to the type it names. Fields point into it so their types can be settled
	// after every fragment of every file is loaded.
	NamedTypeFragments *sequencedmap.Map[string, *TypeFragment] `json:"namedTypeFragments"`
	Definition         *DocumentDefinition                       `json:"-"`
}

// NewJSONSchemaDocument creates an empty document for definition.
func NewJSONSchemaDocument(definition *DocumentDefinition) *JSONSchemaDocument {
	doc := &JSONSchemaDocument{
		NamedTypeFragments: sequencedmap.New[string, *TypeFragment](),
		Definition:         definition,
	}
	if definition != nil {
		doc.DocumentType = definition.DocumentType
		doc.DocumentID = definition.Name
	}
	return doc
}

// GetFragment returns the named type fragment registered under ref.
func (d *JSONSchemaDocument) GetFragment(ref string) (*TypeFragment, bool) {
	return d.NamedTypeFragments.Get(ref)
}

// ResolveChildren returns the children of node followed by the children of every
// named type fragment it references, transitively. A key already seen is not
// repeated, so a field's own children win over fragment children unless the
// earlier one is an AnyType placeholder and the later one has a concrete type.
func (d *JSONSchemaDocument) ResolveChildren(node TypedNode) []*JSONSchemaField {
	children := []*JSONSchemaField{}
	seenKeys := map[string]int{}
	visited := map[string]bool{}

	var collect func(n TypedNode)
	collect = func(n TypedNode) {
		for _, child := range n.GetFields() {
			if i, ok := seenKeys[child.Key]; ok {
				if children[i].Type == AnyType && child.Type.IsConcrete() {
					children[i] = child
				}
				continue
			}
			seenKeys[child.Key] = len(children)
			children = append(children, child)
		}
		for _, ref := range n.GetNamedTypeFragmentRefs() {
			if visited[ref] {
				continue
			}
			visited[ref] = true
			if fragment, ok := d.GetFragment(ref); ok {
				collect(fragment)
			}
		}
	}
	collect(node)

	return children
}

// Walk yields every field reachable from the root fields and from every named
// type fragment, parents before children.
func (d *JSONSchemaDocument) Walk() iter.Seq[*JSONSchemaField] {
	return func(yield func(*JSONSchemaField) bool) {
		var walk func(fields []*JSONSchemaField) bool
		walk = func(fields []*JSONSchemaField) bool {
			for _, f := range fields {
				if !yield(f) {
					return false
				}
				if !walk(f.Fields) {
					return false
				}
			}
			return true
		}

		if !walk(d.Fields) {
			return
		}
		for _, fragment := range d.NamedTypeFragments.All() {
			if !walk(fragment.Fields) {
				return
			}
		}
	}
}

// RootFields returns the root fields as the shared variant type.
func (d *JSONSchemaDocument) RootFields() []Field {
	fields := make([]Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		fields = append(fields, f)
	}
	return fields
}
