package document

import (
	"fmt"
	"slices"
	"strings"
)

const xpathFunctionsPrefix = "xf"

// Field is one node of a document tree. Kind tells the concrete variant apart.
type Field interface {
	Kind() FieldKind
	GetName() string
	GetType() Types
	// GetExpression is the XPath step selecting this field from its parent.
	GetExpression() string
	// GetPath is the XPath location of this field from the document root.
	GetPath() string
}

// FieldList is an ordered list of child fields addressed by key.
type FieldList struct {
	Fields []*JSONSchemaField `json:"fields,omitempty"`
}

// GetFields returns the children in insertion order.
func (l *FieldList) GetFields() []*JSONSchemaField {
	return l.Fields
}

// FindField returns the child with the given key, or nil.
func (l *FieldList) FindField(key string) *JSONSchemaField {
	for _, f := range l.Fields {
		if f.Key == key {
			return f
		}
	}
	return nil
}

// AddField appends a child.
func (l *FieldList) AddField(f *JSONSchemaField) {
	l.Fields = append(l.Fields, f)
}

// ReplaceField swaps the child at the position of old for f and reports whether old was found.
func (l *FieldList) ReplaceField(old, f *JSONSchemaField) bool {
	i := slices.Index(l.Fields, old)
	if i < 0 {
		return false
	}
	l.Fields[i] = f
	return true
}

// TypedNode is a field or a named type fragment: something that owns children
// and may defer its type to named type fragments.
type TypedNode interface {
	GetType() Types
	SetType(t Types)
	GetNamedTypeFragmentRefs() []string
	AddNamedTypeFragmentRef(ref string)
	GetFields() []*JSONSchemaField
	FindField(key string) *JSONSchemaField
	AddField(f *JSONSchemaField)
	ReplaceField(old, f *JSONSchemaField) bool
}

// JSONSchemaField is a field of a JSON schema document. Key is the property name,
// empty for array items and the root.
type JSONSchemaField struct {
	FieldList

	Key       string `json:"key,omitempty"`
	Type      Types  `json:"type"`
	MinOccurs int64  `json:"minOccurs"`
	MaxOccurs int64  `json:"maxOccurs"`
	// NamedTypeFragmentRefs point into JSONSchemaDocument.NamedTypeFragments.
	NamedTypeFragmentRefs []string `json:"namedTypeFragmentRefs,omitempty"`
	// OriginalType is set once a type override replaced Type.
	OriginalType *Types `json:"originalType,omitempty"`

	parent *JSONSchemaField
}

var (
	_ Field     = (*JSONSchemaField)(nil)
	_ TypedNode = (*JSONSchemaField)(nil)
)

// NewJSONSchemaField creates a field owned by parent, which is nil for root
// fields and for fields of a named type fragment.
func NewJSONSchemaField(parent *JSONSchemaField, key string, t Types) *JSONSchemaField {
	return &JSONSchemaField{
		Key:       key,
		Type:      t,
		MinOccurs: 0,
		MaxOccurs: 1,
		parent:    parent,
	}
}

func (f *JSONSchemaField) Kind() FieldKind {
	return FieldKindJSONSchema
}

func (f *JSONSchemaField) GetType() Types {
	return f.Type
}

func (f *JSONSchemaField) SetType(t Types) {
	f.Type = t
}

func (f *JSONSchemaField) GetParent() *JSONSchemaField {
	return f.parent
}

func (f *JSONSchemaField) GetNamedTypeFragmentRefs() []string {
	return f.NamedTypeFragmentRefs
}

// AddNamedTypeFragmentRef records ref once.
func (f *JSONSchemaField) AddNamedTypeFragmentRef(ref string) {
	if !slices.Contains(f.NamedTypeFragmentRefs, ref) {
		f.NamedTypeFragmentRefs = append(f.NamedTypeFragmentRefs, ref)
	}
}

// Adopt moves the children and fragment refs of other onto f.
func (f *JSONSchemaField) Adopt(other *JSONSchemaField) {
	for _, child := range other.Fields {
		child.parent = f
		f.AddField(child)
	}
	for _, ref := range other.NamedTypeFragmentRefs {
		f.AddNamedTypeFragmentRef(ref)
	}
}

// GetName is the element name of the field in the XPath 3.1 JSON representation.
func (f *JSONSchemaField) GetName() string {
	return xpathFunctionsPrefix + ":" + xpathElementName(f.Type)
}

func (f *JSONSchemaField) GetExpression() string {
	if f.Key == "" {
		return f.GetName()
	}
	return fmt.Sprintf("%s[@key='%s']", f.GetName(), strings.ReplaceAll(f.Key, "'", "''"))
}

func (f *JSONSchemaField) GetPath() string {
	if f.parent == nil {
		return "/" + f.GetExpression()
	}
	return f.parent.GetPath() + "/" + f.GetExpression()
}

func xpathElementName(t Types) string {
	switch t {
	case StringType:
		return "string"
	case NumericType, IntegerType:
		return "number"
	case BooleanType:
		return "boolean"
	case ContainerType:
		return "map"
	case ArrayType:
		return "array"
	default:
		return "*"
	}
}

// TypeFragment is a named type defined once and shared by every field that
// references it through $ref.
type TypeFragment struct {
	FieldList

	Type                  Types    `json:"type"`
	NamedTypeFragmentRefs []string `json:"namedTypeFragmentRefs,omitempty"`
}

var _ TypedNode = (*TypeFragment)(nil)

func (t *TypeFragment) GetType() Types {
	return t.Type
}

func (t *TypeFragment) SetType(typ Types) {
	t.Type = typ
}

func (t *TypeFragment) GetNamedTypeFragmentRefs() []string {
	return t.NamedTypeFragmentRefs
}

func (t *TypeFragment) AddNamedTypeFragmentRef(ref string) {
	if !slices.Contains(t.NamedTypeFragmentRefs, ref) {
		t.NamedTypeFragmentRefs = append(t.NamedTypeFragmentRefs, ref)
	}
}
