// Package document holds the in-memory field tree that mapping consumers bind to.
package document

import "fmt"

// Types is the resolved type of a field.
type Types int

const (
	AnyType Types = iota
	StringType
	NumericType
	IntegerType
	BooleanType
	ContainerType
	ArrayType
)

var typeNames = map[Types]string{
	AnyType:       "AnyType",
	StringType:    "String",
	NumericType:   "Numeric",
	IntegerType:   "Integer",
	BooleanType:   "Boolean",
	ContainerType: "Container",
	ArrayType:     "Array",
}

func (t Types) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Types(%d)", int(t))
}

// IsConcrete reports whether t carries type information.
func (t Types) IsConcrete() bool {
	return t != AnyType
}

// MarshalText renders the type by name in JSON output.
func (t Types) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Unbounded is the maxOccurs of repeating fields. It matches the largest integer a
// JavaScript number holds exactly so mapping files stay interchangeable.
const Unbounded int64 = 1<<53 - 1

// FieldKind discriminates the field variants of a document.
type FieldKind string

const (
	FieldKindJSONSchema FieldKind = "json-schema"
	FieldKindPrimitive  FieldKind = "primitive"
)

// DocumentType tells where a document sits in a mapping.
type DocumentType string

const (
	DocumentTypeSourceBody DocumentType = "sourceBody"
	DocumentTypeTargetBody DocumentType = "targetBody"
	DocumentTypeParam      DocumentType = "param"
)

// DefinitionType tells how a document is defined.
type DefinitionType string

const (
	DefinitionTypeJSONSchema DefinitionType = "JSON"
	DefinitionTypePrimitive  DefinitionType = "Primitive"
)
