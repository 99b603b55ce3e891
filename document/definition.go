package document

import (
	"maps"
	"slices"
)

// DocumentDefinition is what a user picked for one side of a mapping.
type DocumentDefinition struct {
	DocumentType   DocumentType
	DefinitionType DefinitionType
	// Name identifies the document: the parameter name, or "Body".
	Name string
	// PrimaryFile is the key of DefinitionFiles holding the root schema.
	PrimaryFile string
	// DefinitionFiles maps file path to raw schema text.
	DefinitionFiles map[string]string
}

// FilePaths returns the definition file paths in lexical order.
func (d *DocumentDefinition) FilePaths() []string {
	if d == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(d.DefinitionFiles))
}
