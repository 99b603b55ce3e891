package jsonschema

import (
	"github.com/speakeasy-api/datamapper/document"
)

// updateFieldTypes gives every AnyType field and fragment the first concrete type found through its named type
// fragment references, then restamps the occurrence bounds of its children.
func updateFieldTypes(doc *document.JSONSchemaDocument) {
	for _, fragment := range doc.NamedTypeFragments.All() {
		settleType(doc, fragment)
	}
	for field := range doc.Walk() {
		settleType(doc, field)
	}
}

func settleType(doc *document.JSONSchemaDocument, node document.TypedNode) {
	if node.GetType() == document.AnyType {
		if t := typeFromFragments(doc, node.GetNamedTypeFragmentRefs(), map[string]bool{}); t.IsConcrete() {
			node.SetType(t)
		}
	}
	restampChildren(node)
}

func typeFromFragments(doc *document.JSONSchemaDocument, refs []string, visited map[string]bool) document.Types {
	for _, ref := range refs {
		if visited[ref] {
			continue
		}
		visited[ref] = true

		fragment, ok := doc.GetFragment(ref)
		if !ok {
			continue
		}
		if fragment.Type.IsConcrete() {
			return fragment.Type
		}
		if t := typeFromFragments(doc, fragment.NamedTypeFragmentRefs, visited); t.IsConcrete() {
			return t
		}
	}
	return document.AnyType
}

func restampChildren(node document.TypedNode) {
	switch node.GetType() {
	case document.ArrayType:
		for _, child := range node.GetFields() {
			if child.Key == "" {
				child.MinOccurs, child.MaxOccurs = 0, document.Unbounded
			}
		}
	case document.ContainerType:
		for _, child := range node.GetFields() {
			if child.Key != "" {
				child.MaxOccurs = 1
			}
		}
	}
}
