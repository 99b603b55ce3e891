package jsonschema

import (
	"github.com/speakeasy-api/datamapper/document"
	"github.com/speakeasy-api/datamapper/references"
	"go.uber.org/zap"
)

type occurrence int

const (
	occursRoot occurrence = iota
	occursProperty
	occursArrayItem
)

// fieldParent is anything fields can be added to: the document, a field or a named type fragment.
type fieldParent interface {
	FindField(key string) *document.JSONSchemaField
	AddField(f *document.JSONSchemaField)
	ReplaceField(old, f *document.JSONSchemaField) bool
}

type builder struct {
	doc        *document.JSONSchemaDocument
	collection *Collection
	primary    *SchemaMetadata
	logger     *zap.Logger
	// active holds the schema nodes on the current recursion path within one tree. They only repeat through
	// recursive yaml aliases.
	active map[*Schema]bool
}

func (b *builder) populateRoot() error {
	_, err := b.populateFieldFromSchema(b.doc, "", b.primary.Schema, b.primary, occursRoot, true)
	return err
}

// populateFieldFromSchema creates or reuses the child of parent keyed by key and fills it from schema. metadata is
// the file schema belongs to, internal references are resolved against it.
func (b *builder) populateFieldFromSchema(parent fieldParent, key string, schema *Schema, metadata *SchemaMetadata, occurs occurrence, required bool) (*document.JSONSchemaField, error) {
	field := b.ensureField(parent, key, inferType(schema))

	switch occurs {
	case occursRoot:
		field.MinOccurs, field.MaxOccurs = 1, 1
	case occursArrayItem:
		field.MinOccurs, field.MaxOccurs = 0, document.Unbounded
	default:
		if required {
			field.MinOccurs = 1
		}
	}

	if schema == nil || schema.IsBoolean() {
		return field, nil
	}
	if err := b.applySchema(field, schema, metadata); err != nil {
		return nil, err
	}
	return field, nil
}

// ensureField returns the child of parent keyed by key, creating it with type t when missing. An AnyType child is
// replaced by a field of type t that adopts its children and references.
func (b *builder) ensureField(parent fieldParent, key string, t document.Types) *document.JSONSchemaField {
	owner, _ := parent.(*document.JSONSchemaField)

	existing := parent.FindField(key)
	if existing == nil {
		f := document.NewJSONSchemaField(owner, key, t)
		parent.AddField(f)
		return f
	}
	if existing.Type != document.AnyType || t == document.AnyType {
		return existing
	}

	upgraded := document.NewJSONSchemaField(owner, key, t)
	upgraded.MinOccurs, upgraded.MaxOccurs = existing.MinOccurs, existing.MaxOccurs
	upgraded.Adopt(existing)
	parent.ReplaceField(existing, upgraded)
	return upgraded
}

// applySchema merges schema into node: its type when node has none yet, its reference, its properties, its items and
// the members of its compositions.
func (b *builder) applySchema(node document.TypedNode, schema *Schema, metadata *SchemaMetadata) error {
	if schema == nil || schema.IsBoolean() || b.active[schema] {
		return nil
	}
	b.active[schema] = true
	defer delete(b.active, schema)

	if node.GetType() == document.AnyType {
		if t := inferType(schema); t.IsConcrete() {
			node.SetType(t)
		}
	}

	if schema.Ref != "" {
		key, err := b.resolveFragment(schema.Ref, metadata)
		if err != nil {
			return err
		}
		node.AddNamedTypeFragmentRef(key)
	}

	for name, property := range schema.Properties.All() {
		if _, err := b.populateFieldFromSchema(node, name, property, metadata, occursProperty, schema.IsRequired(name)); err != nil {
			return err
		}
	}
	for _, name := range schema.Required {
		if schema.Properties.Has(name) {
			continue
		}
		b.ensureField(node, name, document.AnyType).MinOccurs = 1
	}

	if schema.Items != nil {
		if _, err := b.populateFieldFromSchema(node, "", schema.Items, metadata, occursArrayItem, false); err != nil {
			return err
		}
	}
	for _, item := range schema.ItemsArray {
		if _, err := b.populateFieldFromSchema(node, "", item, metadata, occursArrayItem, false); err != nil {
			return err
		}
	}

	for _, members := range [][]*Schema{schema.AllOf, schema.AnyOf, schema.OneOf} {
		for _, member := range members {
			if err := b.applySchema(node, member, metadata); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveFragment returns the key of the named type fragment ref points to, materializing the fragment the first
// time it is seen. The fragment is registered before it is filled so references back to it end the recursion.
func (b *builder) resolveFragment(ref string, metadata *SchemaMetadata) (string, error) {
	r := references.Reference(ref)

	target := metadata
	if !r.IsInternal() {
		resolved, err := b.collection.ResolveReference(ref, metadata)
		if err != nil {
			return "", err
		}
		target = resolved
		if target == nil {
			return "", ErrUnresolvedReference.Wrapf("'%s' referenced from '%s'", ref, metadata.Identifier)
		}
	}

	jsRef := NewJSONSchemaReference(target, r.GetLocalPart(), target != b.primary)
	key := jsRef.FullPath()
	if _, ok := b.doc.GetFragment(key); ok {
		return key, nil
	}

	schema, err := jsRef.Resolve()
	if err != nil {
		return "", ErrUnresolvedReference.Wrapf("'%s' referenced from '%s': %w", ref, metadata.Identifier, err)
	}

	fragment := &document.TypeFragment{}
	b.doc.NamedTypeFragments.Set(key, fragment)
	b.logger.Debug("materializing type fragment", zap.String("key", key), zap.String("ref", ref))

	// a fragment is a new tree, recursion through fragments ends at the registration above
	active := b.active
	b.active = map[*Schema]bool{}
	defer func() { b.active = active }()

	if err := b.applySchema(fragment, schema, target); err != nil {
		return "", err
	}
	return key, nil
}
