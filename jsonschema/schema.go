// Package jsonschema loads JSON Schema definition files, analyzes the references between them and
// builds the field documents used by the mapper.
package jsonschema

import (
	"fmt"
	"strconv"

	"github.com/speakeasy-api/datamapper/jsonpointer"
	"github.com/speakeasy-api/datamapper/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Schema is the subset of a JSON Schema object the mapper understands. Keywords it does not model are left on the
// underlying yaml node.
type Schema struct {
	ID          string
	SchemaURI   string
	Ref         string
	Type        []string
	Title       string
	Description string

	Properties        *sequencedmap.Map[string, *Schema]
	PatternProperties *sequencedmap.Map[string, *Schema]
	Definitions       *sequencedmap.Map[string, *Schema]
	Defs              *sequencedmap.Map[string, *Schema]

	// Items is set when items is a single schema, ItemsArray when it is a tuple.
	Items                *Schema
	ItemsArray           []*Schema
	AdditionalProperties *Schema
	AdditionalItems      *Schema
	Contains             *Schema
	Not                  *Schema
	If                   *Schema
	Then                 *Schema
	Else                 *Schema

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema

	Required []string
	Enum     []any

	// Bool is set for the boolean schemas true and false.
	Bool *bool

	Node *yaml.Node
}

// IsBoolean reports whether the schema is one of the boolean schemas.
func (s *Schema) IsBoolean() bool {
	return s != nil && s.Bool != nil
}

// IsRequired reports whether name is listed in the required keyword.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// NavigateWithKey allows the schema to be traversed with a JSON pointer.
func (s *Schema) NavigateWithKey(key string) (any, error) {
	if s == nil || s.IsBoolean() {
		return nil, fmt.Errorf("cannot navigate %q on an empty or boolean schema", key)
	}

	var m *sequencedmap.Map[string, *Schema]
	var sub *Schema
	var list []*Schema

	switch key {
	case "properties":
		m = s.Properties
	case "patternProperties":
		m = s.PatternProperties
	case "definitions":
		m = s.Definitions
	case "$defs":
		m = s.Defs
	case "items":
		if s.Items != nil {
			sub = s.Items
		} else {
			list = s.ItemsArray
		}
	case "additionalProperties":
		sub = s.AdditionalProperties
	case "additionalItems":
		sub = s.AdditionalItems
	case "contains":
		sub = s.Contains
	case "not":
		sub = s.Not
	case "if":
		sub = s.If
	case "then":
		sub = s.Then
	case "else":
		sub = s.Else
	case "allOf":
		list = s.AllOf
	case "anyOf":
		list = s.AnyOf
	case "oneOf":
		list = s.OneOf
	default:
		return nil, fmt.Errorf("keyword %q is not navigable", key)
	}

	switch {
	case m != nil:
		return m, nil
	case sub != nil:
		return sub, nil
	case list != nil:
		return schemaList(list), nil
	}

	return nil, fmt.Errorf("keyword %q not present", key)
}

type schemaList []*Schema

func (l schemaList) NavigateWithIndex(index int) (any, error) {
	if index < 0 || index >= len(l) {
		return nil, fmt.Errorf("index %d out of range", index)
	}
	return l[index], nil
}

// DecodeSchema builds a Schema from a parsed yaml node. Anchors and aliases are supported, including recursive ones.
func DecodeSchema(node *yaml.Node) (*Schema, error) {
	d := &decoder{seen: map[*yaml.Node]*Schema{}}
	return d.decode(node, "")
}

type decoder struct {
	seen map[*yaml.Node]*Schema
}

func (d *decoder) decode(node *yaml.Node, path jsonpointer.JSONPointer) (*Schema, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, ErrInvalidSchema.Wrapf("empty document")
		}
		node = node.Content[0]
	}
	for node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	if s, ok := d.seen[node]; ok {
		return s, nil
	}

	switch node.Kind {
	case yaml.ScalarNode:
		b, err := strconv.ParseBool(node.Value)
		if err != nil || node.Tag != "!!bool" {
			return nil, ErrInvalidSchema.Wrapf("#%s: expected object or boolean at line %d", path, node.Line)
		}
		s := &Schema{Bool: &b, Node: node}
		d.seen[node] = s
		return s, nil
	case yaml.MappingNode:
	default:
		return nil, ErrInvalidSchema.Wrapf("#%s: expected object or boolean at line %d", path, node.Line)
	}

	s := &Schema{Node: node}
	d.seen[node] = s

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]
		for valueNode.Kind == yaml.AliasNode {
			valueNode = valueNode.Alias
		}
		key := keyNode.Value
		keyPath := path.Append(key)

		var err error
		switch key {
		case "$id":
			s.ID, err = scalarString(valueNode, keyPath)
		case "$schema":
			s.SchemaURI, err = scalarString(valueNode, keyPath)
		case "$ref":
			s.Ref, err = scalarString(valueNode, keyPath)
		case "title":
			s.Title, err = scalarString(valueNode, keyPath)
		case "description":
			s.Description, err = scalarString(valueNode, keyPath)
		case "type":
			s.Type, err = stringOrList(valueNode, keyPath)
		case "properties":
			s.Properties, err = d.decodeMap(valueNode, keyPath)
		case "patternProperties":
			s.PatternProperties, err = d.decodeMap(valueNode, keyPath)
		case "definitions":
			s.Definitions, err = d.decodeMap(valueNode, keyPath)
		case "$defs":
			s.Defs, err = d.decodeMap(valueNode, keyPath)
		case "items":
			if valueNode.Kind == yaml.SequenceNode {
				s.ItemsArray, err = d.decodeList(valueNode, keyPath)
			} else {
				s.Items, err = d.decode(valueNode, keyPath)
			}
		case "additionalProperties":
			s.AdditionalProperties, err = d.decode(valueNode, keyPath)
		case "additionalItems":
			s.AdditionalItems, err = d.decode(valueNode, keyPath)
		case "contains":
			s.Contains, err = d.decode(valueNode, keyPath)
		case "not":
			s.Not, err = d.decode(valueNode, keyPath)
		case "if":
			s.If, err = d.decode(valueNode, keyPath)
		case "then":
			s.Then, err = d.decode(valueNode, keyPath)
		case "else":
			s.Else, err = d.decode(valueNode, keyPath)
		case "allOf":
			s.AllOf, err = d.decodeList(valueNode, keyPath)
		case "anyOf":
			s.AnyOf, err = d.decodeList(valueNode, keyPath)
		case "oneOf":
			s.OneOf, err = d.decodeList(valueNode, keyPath)
		case "required":
			// draft-03 used a boolean here
			if valueNode.Kind == yaml.SequenceNode {
				s.Required, err = stringOrList(valueNode, keyPath)
			}
		case "enum":
			if valueNode.Kind == yaml.SequenceNode {
				err = valueNode.Decode(&s.Enum)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (d *decoder) decodeMap(node *yaml.Node, path jsonpointer.JSONPointer) (*sequencedmap.Map[string, *Schema], error) {
	if node.Kind != yaml.MappingNode {
		return nil, ErrInvalidSchema.Wrapf("#%s: expected object at line %d", path, node.Line)
	}

	m := sequencedmap.New[string, *Schema]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		s, err := d.decode(node.Content[i+1], path.Append(key))
		if err != nil {
			return nil, err
		}
		m.Set(key, s)
	}
	return m, nil
}

func (d *decoder) decodeList(node *yaml.Node, path jsonpointer.JSONPointer) ([]*Schema, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, ErrInvalidSchema.Wrapf("#%s: expected array at line %d", path, node.Line)
	}

	list := make([]*Schema, 0, len(node.Content))
	for i, item := range node.Content {
		s, err := d.decode(item, path.Append(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

func scalarString(node *yaml.Node, path jsonpointer.JSONPointer) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", ErrInvalidSchema.Wrapf("#%s: expected string at line %d", path, node.Line)
	}
	return node.Value, nil
}

func stringOrList(node *yaml.Node, path jsonpointer.JSONPointer) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := scalarString(item, path)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, ErrInvalidSchema.Wrapf("#%s: expected string or array at line %d", path, node.Line)
	}
}
