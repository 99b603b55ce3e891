package jsonschema

import (
	"slices"
	"strings"

	"github.com/speakeasy-api/datamapper/internal/utils"
	"github.com/speakeasy-api/datamapper/references"
	"github.com/speakeasy-api/datamapper/sequencedmap"
	"go.uber.org/zap"
)

// Collection holds the schemas of a document build. Every schema is stored once and may be looked up by its
// identifier or any alias registered for it. Definition files that have not been parsed yet are loaded on demand
// when a reference first needs them.
type Collection struct {
	schemas         []*SchemaMetadata
	index           map[string]int
	definitionFiles *sequencedmap.Map[string, string]
	logger          *zap.Logger
}

// NewCollection creates an empty collection.
func NewCollection(opts ...Option) *Collection {
	o := newOptions(opts)
	return &Collection{
		index:           map[string]int{},
		definitionFiles: sequencedmap.New[string, string](),
		logger:          o.logger,
	}
}

// AddJSONSchema registers metadata under its identifier. It does not deduplicate.
func (c *Collection) AddJSONSchema(metadata *SchemaMetadata) {
	c.schemas = append(c.schemas, metadata)
	c.index[metadata.Identifier] = len(c.schemas) - 1
}

// AddAlias makes every alias resolve to the schema registered under identifier. It reports false if identifier is
// unknown.
func (c *Collection) AddAlias(identifier string, aliases ...string) bool {
	i, ok := c.index[identifier]
	if !ok {
		return false
	}
	for _, alias := range aliases {
		if alias == "" {
			continue
		}
		c.index[alias] = i
	}
	return true
}

// GetJSONSchema returns the schema registered under key, or nil.
func (c *Collection) GetJSONSchema(key string) *SchemaMetadata {
	i, ok := c.index[key]
	if !ok {
		return nil
	}
	return c.schemas[i]
}

// GetJSONSchemas returns every stored schema in insertion order.
func (c *Collection) GetJSONSchemas() []*SchemaMetadata {
	return slices.Clone(c.schemas)
}

// SetDefinitionFiles replaces the raw definition files available for lazy loading.
func (c *Collection) SetDefinitionFiles(files map[string]string) {
	c.definitionFiles = sequencedmap.New[string, string]()
	c.AddDefinitionFiles(files)
}

// AddDefinitionFiles adds raw definition files available for lazy loading.
func (c *Collection) AddDefinitionFiles(files map[string]string) {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		c.definitionFiles.Set(k, files[k])
	}
}

// ResolveReference finds the schema the schema part of ref points to. Internal references resolve to nil, as does
// a reference no strategy can satisfy. current is the schema the reference appears in and is used to resolve
// relative paths. A matching definition file that has not been loaded yet is parsed and registered.
func (c *Collection) ResolveReference(ref string, current *SchemaMetadata) (*SchemaMetadata, error) {
	r := references.Reference(ref)
	if r.IsInternal() {
		return nil, nil
	}
	schemaPart := r.GetURI()

	// source relative parts are never registered as aliases
	alias := schemaPart
	if isDotRelative(schemaPart) {
		alias = ""
	}

	for _, candidate := range candidatePaths(schemaPart, current) {
		if metadata := c.GetJSONSchema(candidate); metadata != nil {
			c.AddAlias(metadata.Identifier, alias)
			return metadata, nil
		}
		if _, ok := c.definitionFiles.Get(candidate); ok {
			return c.loadDefinitionFile(candidate, alias)
		}
	}

	filename := utils.ExtractFilename(utils.NormalizePath(schemaPart))
	var matches []string
	for filePath := range c.definitionFiles.Keys() {
		if utils.ExtractFilename(filePath) == filename {
			matches = append(matches, filePath)
		}
	}

	switch len(matches) {
	case 0:
		c.logger.Debug("schema reference not resolved", zap.String("ref", ref))
		return nil, nil
	case 1:
		return c.loadDefinitionFile(matches[0], alias)
	default:
		return nil, ErrAmbiguousReference.Wrapf("'%s' matches files: %s", ref, strings.Join(matches, ", "))
	}
}

func (c *Collection) loadDefinitionFile(filePath, requested string) (*SchemaMetadata, error) {
	if metadata := c.GetJSONSchema(filePath); metadata != nil {
		c.AddAlias(metadata.Identifier, requested)
		return metadata, nil
	}

	content, _ := c.definitionFiles.Get(filePath)
	metadata, err := ParseSchema(filePath, []byte(content))
	if err != nil {
		return nil, err
	}

	c.AddJSONSchema(metadata)
	aliases := []string{filePath, requested}
	if !strings.HasPrefix(filePath, "./") && !strings.HasPrefix(filePath, "/") {
		aliases = append(aliases, "./"+filePath)
	}
	c.AddAlias(metadata.Identifier, aliases...)

	c.logger.Debug("loaded definition file",
		zap.String("path", filePath),
		zap.String("identifier", metadata.Identifier),
		zap.String("requested", requested))

	return metadata, nil
}
