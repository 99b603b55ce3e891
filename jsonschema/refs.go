package jsonschema

import (
	"slices"
	"strings"

	"github.com/speakeasy-api/datamapper/internal/utils"
	"github.com/speakeasy-api/datamapper/sequencedmap"
)

// ExtractRefs returns every $ref value in schema and its subschemas, in document order. Shared or recursive
// subschemas are visited once.
func ExtractRefs(schema *Schema) []string {
	refs := []string{}
	visited := map[*Schema]bool{}

	var walk func(s *Schema)
	walk = func(s *Schema) {
		if s == nil || s.IsBoolean() || visited[s] {
			return
		}
		visited[s] = true

		if s.Ref != "" {
			refs = append(refs, s.Ref)
		}
		for _, child := range subschemas(s) {
			walk(child)
		}
	}
	walk(schema)

	return refs
}

// subschemas lists the direct subschemas of s in keyword order.
func subschemas(s *Schema) []*Schema {
	var out []*Schema
	for _, m := range []*sequencedmap.Map[string, *Schema]{s.Properties, s.PatternProperties, s.Definitions, s.Defs} {
		for child := range m.Values() {
			out = append(out, child)
		}
	}
	if s.Items != nil {
		out = append(out, s.Items)
	}
	out = append(out, s.ItemsArray...)
	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	for _, child := range []*Schema{s.AdditionalProperties, s.AdditionalItems, s.Contains, s.Not, s.If, s.Then, s.Else} {
		if child != nil {
			out = append(out, child)
		}
	}
	return out
}

// candidatePaths lists the paths a schema part may name, without repeats: the exact text, the path relative to the
// source file and the normalized path. A part starting with "./" or "../" names a file next to its source, so the
// source relative path is tried first.
func candidatePaths(schemaPart string, source *SchemaMetadata) []string {
	var relative string
	if source != nil && source.FilePath != "" && !utils.IsAbsolutePath(schemaPart) {
		relative = utils.ResolveRelativePath(source.FilePath, schemaPart)
	}

	ordered := []string{schemaPart, relative, utils.NormalizePath(schemaPart)}
	if isDotRelative(schemaPart) {
		ordered = []string{relative, schemaPart, utils.NormalizePath(schemaPart)}
	}

	paths := make([]string, 0, len(ordered))
	for _, p := range ordered {
		if p != "" && !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

func isDotRelative(schemaPart string) bool {
	return strings.HasPrefix(schemaPart, "./") || strings.HasPrefix(schemaPart, "../")
}
