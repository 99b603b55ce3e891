package jsonschema

import (
	"strings"

	"github.com/speakeasy-api/datamapper/document"
)

// TypeOverrideVariant tells whether an override discards type information.
type TypeOverrideVariant string

const (
	// TypeOverrideSafe replaces an AnyType, nothing is lost.
	TypeOverrideSafe TypeOverrideVariant = "SAFE"
	// TypeOverrideForce replaces a concrete type.
	TypeOverrideForce TypeOverrideVariant = "FORCE"
)

var fromTypeString = map[string]document.Types{
	"string":  document.StringType,
	"number":  document.NumericType,
	"integer": document.IntegerType,
	"boolean": document.BooleanType,
	"object":  document.ContainerType,
	"array":   document.ArrayType,
}

// typePrecedence orders types from the most to the least structural, used to pick one type from a type list.
var typePrecedence = []document.Types{
	document.ArrayType,
	document.ContainerType,
	document.StringType,
	document.IntegerType,
	document.NumericType,
	document.BooleanType,
}

// FromTypeString maps a JSON Schema type keyword value to a type. Unknown values, null included, map to AnyType.
func FromTypeString(s string) document.Types {
	if t, ok := fromTypeString[s]; ok {
		return t
	}
	return document.AnyType
}

// ToTypeString maps a type back to its JSON Schema type keyword value. AnyType has none and maps to "".
func ToTypeString(t document.Types) string {
	for s, candidate := range fromTypeString {
		if candidate == t {
			return s
		}
	}
	return ""
}

// ParseTypeOverride maps a user supplied override to a type. Matching is case-insensitive and a fragment reference
// such as "#/definitions/Address" is always a Container.
func ParseTypeOverride(override string) document.Types {
	override = strings.TrimSpace(override)
	if strings.HasPrefix(override, "#/") {
		return document.ContainerType
	}
	return FromTypeString(strings.ToLower(override))
}

// ClassifyOverrideVariant returns TypeOverrideSafe when original carries no type information.
func ClassifyOverrideVariant(original document.Types) TypeOverrideVariant {
	if original == document.AnyType {
		return TypeOverrideSafe
	}
	return TypeOverrideForce
}

// inferType picks the type of a schema node. With a type list the most structural member wins, without a type
// keyword the presence of items or properties decides.
func inferType(schema *Schema) document.Types {
	if schema == nil || schema.IsBoolean() {
		return document.AnyType
	}

	if len(schema.Type) > 0 {
		seen := map[document.Types]bool{}
		for _, s := range schema.Type {
			seen[FromTypeString(s)] = true
		}
		for _, t := range typePrecedence {
			if seen[t] {
				return t
			}
		}
		return document.AnyType
	}

	switch {
	case schema.Items != nil || len(schema.ItemsArray) > 0:
		return document.ArrayType
	case schema.Properties.Len() > 0:
		return document.ContainerType
	default:
		return document.AnyType
	}
}

// TypeOverride records an override applied to a field.
type TypeOverride struct {
	Path         string              `json:"path"`
	Override     string              `json:"override"`
	OriginalType document.Types      `json:"originalType"`
	Type         document.Types      `json:"type"`
	Variant      TypeOverrideVariant `json:"variant"`
}

// ApplyTypeOverride changes the type of field. A fragment reference override must name a fragment of doc and
// replaces the field's fragment references. Overriding to a primitive type drops the field's children. The type
// the field had before its first override is kept in OriginalType, so classifying repeated overrides stays stable.
func ApplyTypeOverride(doc *document.JSONSchemaDocument, field *document.JSONSchemaField, override string) (*TypeOverride, error) {
	if field == nil {
		return nil, ErrInvalidTypeOverride.Wrapf("no field")
	}

	override = strings.TrimSpace(override)
	newType := ParseTypeOverride(override)
	if newType == document.AnyType && !strings.EqualFold(override, "any") {
		return nil, ErrInvalidTypeOverride.Wrapf("unknown type '%s'", override)
	}

	isFragment := strings.HasPrefix(override, "#/")
	if isFragment {
		if doc == nil {
			return nil, ErrInvalidTypeOverride.Wrapf("no document to resolve '%s'", override)
		}
		if _, ok := doc.GetFragment(override); !ok {
			return nil, ErrInvalidTypeOverride.Wrapf("fragment '%s' not found", override)
		}
	}

	original := field.Type
	if field.OriginalType != nil {
		original = *field.OriginalType
	} else {
		field.OriginalType = &original
	}

	if isFragment {
		field.NamedTypeFragmentRefs = []string{override}
	}
	field.Type = newType
	if newType != document.ContainerType && newType != document.ArrayType {
		field.Fields = nil
		field.NamedTypeFragmentRefs = nil
	}

	return &TypeOverride{
		Path:         field.GetPath(),
		Override:     override,
		OriginalType: original,
		Type:         newType,
		Variant:      ClassifyOverrideVariant(original),
	}, nil
}
