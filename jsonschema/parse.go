package jsonschema

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	jsv "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/speakeasy-api/datamapper/jsonpointer"
	"gopkg.in/yaml.v3"
)

// SchemaMetadata is a parsed definition file together with the identity it is known by.
type SchemaMetadata struct {
	// Identifier is the $id of the schema or, without one, the file path.
	Identifier string `json:"identifier"`
	// Path is the JSON pointer of Schema within its file, "#" for the whole file.
	Path     string  `json:"path"`
	FilePath string  `json:"filePath"`
	Schema   *Schema `json:"-"`

	SchemaDependencies []string `json:"schemaDependencies,omitempty"`
	SchemaDependents   []string `json:"schemaDependents,omitempty"`
}

// ParseSchema parses a JSON or YAML definition file. Files that are not YAML by extension must be strict JSON.
func ParseSchema(filePath string, content []byte) (*SchemaMetadata, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrInvalidSchema.Wrapf("%s: empty file", filePath)
	}

	root := &yaml.Node{}
	if isYAMLFile(filePath) {
		if err := yaml.Unmarshal(content, root); err != nil {
			return nil, ErrInvalidSchema.Wrapf("%s: %w", filePath, err)
		}
	} else {
		if _, err := jsv.UnmarshalJSON(bytes.NewReader(content)); err != nil {
			return nil, ErrInvalidSchema.Wrapf("%s: %w", filePath, err)
		}
		var err error
		if root, err = decodeJSONNode(content); err != nil {
			return nil, ErrInvalidSchema.Wrapf("%s: %w", filePath, err)
		}
	}

	schema, err := DecodeSchema(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if schema == nil {
		return nil, ErrInvalidSchema.Wrapf("%s: empty document", filePath)
	}

	identifier := filePath
	if id := strings.TrimSuffix(strings.TrimSpace(schema.ID), "#"); id != "" {
		identifier = id
	}

	return &SchemaMetadata{
		Identifier: identifier,
		Path:       "#",
		FilePath:   filePath,
		Schema:     schema,
	}, nil
}

// ExtractSubSchema returns the schema the JSON pointer in localPart addresses, relative to the file root. An empty
// pointer addresses the root schema.
func (m *SchemaMetadata) ExtractSubSchema(localPart string) (*Schema, error) {
	pointer := jsonpointer.JSONPointer(strings.TrimPrefix(localPart, "#"))
	if pointer == "" || pointer == "/" {
		return m.Schema, nil
	}

	target, err := jsonpointer.GetTarget(m.Schema, pointer)
	if err != nil {
		return nil, ErrUnresolvedReference.Wrapf("%s#%s: %w", m.Identifier, pointer, err)
	}

	schema, ok := target.(*Schema)
	if !ok || schema == nil {
		return nil, ErrUnresolvedReference.Wrapf("%s#%s: does not address a schema", m.Identifier, pointer)
	}

	return schema, nil
}

func isYAMLFile(filePath string) bool {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
