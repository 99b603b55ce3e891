package jsonschema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/speakeasy-api/datamapper/internal/utils"
	"github.com/speakeasy-api/datamapper/references"
	"github.com/speakeasy-api/datamapper/sequencedmap"
	"go.uber.org/zap"
)

// DependencyNode is a schema in the dependency graph. Nodes are also created for definition files that are referenced
// but were not parsed, using the file path as identifier.
type DependencyNode struct {
	Identifier string            `json:"identifier"`
	FilePath   string            `json:"filePath"`
	Outbound   []*DependencyEdge `json:"-"`
	Inbound    []*DependencyEdge `json:"-"`
}

// Dependencies returns the distinct identifiers this node references, in reference order.
func (n *DependencyNode) Dependencies() []string {
	out := []string{}
	for _, e := range n.Outbound {
		if !slices.Contains(out, e.To) {
			out = append(out, e.To)
		}
	}
	return out
}

// Dependents returns the distinct identifiers referencing this node, in reference order.
func (n *DependencyNode) Dependents() []string {
	out := []string{}
	for _, e := range n.Inbound {
		if !slices.Contains(out, e.From) {
			out = append(out, e.From)
		}
	}
	return out
}

// DependencyEdge is one cross-file $ref. A schema referencing itself never produces an edge.
type DependencyEdge struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Ref       string `json:"ref"`
	LocalPart string `json:"localPart"`
}

// CircularChain lists the identifiers of a cycle with the first identifier repeated at the end.
type CircularChain []string

func (c CircularChain) String() string {
	return strings.Join(c, " → ")
}

// MissingReference is a $ref whose schema part could not be resolved to any schema or definition file.
type MissingReference struct {
	From string `json:"from"`
	Ref  string `json:"ref"`
	// Candidates lists the files a filename-only match found when there was more than one.
	Candidates []string `json:"candidates,omitempty"`
}

// AnalysisReport is the result of Analyze.
type AnalysisReport struct {
	Nodes                *sequencedmap.Map[string, *DependencyNode] `json:"nodes"`
	Edges                []*DependencyEdge                          `json:"edges"`
	LoadOrder            []string                                   `json:"loadOrder"`
	CircularDependencies []CircularChain                            `json:"circularDependencies"`
	MissingReferences    []MissingReference                         `json:"missingReferences"`
	Warnings             []string                                   `json:"warnings"`
	Errors               []string                                   `json:"errors"`
}

// HasErrors reports whether the analysis found problems that prevent building a document.
func (r *AnalysisReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether the analysis found non-fatal problems.
func (r *AnalysisReport) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Analyze builds the dependency graph of schemas, detects cycles, computes a load order placing dependencies before
// their dependents and reports missing references and $id problems. definitionFiles may be nil; when given, refs to
// files that were not parsed still resolve. Analyze never fails, every problem is recorded in the report.
func Analyze(schemas []*SchemaMetadata, definitionFiles map[string]string, opts ...Option) *AnalysisReport {
	o := newOptions(opts)

	a := &analyzer{
		report: &AnalysisReport{
			Nodes:                sequencedmap.New[string, *DependencyNode](),
			Edges:                []*DependencyEdge{},
			LoadOrder:            []string{},
			CircularDependencies: []CircularChain{},
			MissingReferences:    []MissingReference{},
			Warnings:             []string{},
			Errors:               []string{},
		},
		byKey:  map[string]*SchemaMetadata{},
		logger: o.logger,
	}

	for _, schema := range schemas {
		if schema == nil {
			continue
		}
		a.schemas = append(a.schemas, schema)
		if !a.report.Nodes.Has(schema.Identifier) {
			a.report.Nodes.Set(schema.Identifier, &DependencyNode{Identifier: schema.Identifier, FilePath: schema.FilePath})
		}
		if _, ok := a.byKey[schema.Identifier]; !ok {
			a.byKey[schema.Identifier] = schema
		}
	}
	for _, schema := range a.schemas {
		if schema.FilePath == "" {
			continue
		}
		if _, ok := a.byKey[schema.FilePath]; !ok {
			a.byKey[schema.FilePath] = schema
		}
	}
	for path := range definitionFiles {
		a.definitionFiles = append(a.definitionFiles, path)
	}
	slices.Sort(a.definitionFiles)

	a.buildGraph()
	a.report.CircularDependencies = detectCycles(a.report.Nodes)
	a.report.LoadOrder = computeLoadOrder(a.report.Nodes, a.report.CircularDependencies)

	for _, chain := range a.report.CircularDependencies {
		a.report.Warnings = append(a.report.Warnings, "Circular dependency detected: "+chain.String())
	}
	a.detectDuplicateIDs()
	a.detectIDConflicts()

	o.logger.Debug("analyzed schema dependencies",
		zap.Int("nodes", a.report.Nodes.Len()),
		zap.Int("edges", len(a.report.Edges)),
		zap.Int("cycles", len(a.report.CircularDependencies)),
		zap.Int("missing", len(a.report.MissingReferences)))

	return a.report
}

// AnnotateDependencies fills SchemaDependencies and SchemaDependents of every schema from the report.
func AnnotateDependencies(report *AnalysisReport, schemas []*SchemaMetadata) {
	for _, schema := range schemas {
		node, ok := report.Nodes.Get(schema.Identifier)
		if !ok {
			continue
		}
		schema.SchemaDependencies = node.Dependencies()
		schema.SchemaDependents = node.Dependents()
	}
}

type analyzer struct {
	report          *AnalysisReport
	schemas         []*SchemaMetadata
	byKey           map[string]*SchemaMetadata
	definitionFiles []string
	logger          *zap.Logger
}

func (a *analyzer) buildGraph() {
	for _, schema := range a.schemas {
		for _, raw := range ExtractRefs(schema.Schema) {
			ref := references.Reference(raw)
			schemaPart := ref.GetURI()
			if schemaPart == "" {
				continue
			}
			if err := ref.Validate(); err != nil {
				a.logger.Debug("malformed schema reference", zap.String("ref", raw), zap.Error(err))
				a.addMissingReference(schema.Identifier, raw, nil)
				continue
			}

			target, candidates := a.resolveRefTarget(schemaPart, schema)
			if target == "" {
				a.addMissingReference(schema.Identifier, raw, candidates)
				continue
			}
			if target == schema.Identifier {
				continue
			}

			a.addEdge(&DependencyEdge{
				From:      schema.Identifier,
				To:        target,
				Ref:       raw,
				LocalPart: ref.GetLocalPart(),
			})
		}
	}
}

func (a *analyzer) addEdge(e *DependencyEdge) {
	from, _ := a.report.Nodes.Get(e.From)
	to, ok := a.report.Nodes.Get(e.To)
	if !ok {
		to = &DependencyNode{Identifier: e.To, FilePath: e.To}
		a.report.Nodes.Set(e.To, to)
	}

	a.report.Edges = append(a.report.Edges, e)
	from.Outbound = append(from.Outbound, e)
	to.Inbound = append(to.Inbound, e)
}

func (a *analyzer) addMissingReference(from, ref string, candidates []string) {
	a.report.MissingReferences = append(a.report.MissingReferences, MissingReference{From: from, Ref: ref, Candidates: candidates})

	msg := fmt.Sprintf("Missing schema reference: '%s' referenced from '%s' could not be resolved", ref, from)
	if len(candidates) > 0 {
		msg += fmt.Sprintf(" (ambiguous, matches files: %s)", strings.Join(candidates, ", "))
	}
	a.report.Errors = append(a.report.Errors, msg)
}

// resolveRefTarget returns the identifier schemaPart refers to, or the definition file key standing in for an
// unparsed file. When nothing matches but a filename-only match found several files they are returned as candidates.
func (a *analyzer) resolveRefTarget(schemaPart string, source *SchemaMetadata) (string, []string) {
	variants := candidatePaths(schemaPart, source)

	for _, v := range variants {
		if schema, ok := a.byKey[v]; ok {
			return schema.Identifier, nil
		}
	}

	filename := utils.ExtractFilename(utils.NormalizePath(schemaPart))
	var schemaMatches []string
	for _, schema := range a.schemas {
		if schema.FilePath != "" && utils.ExtractFilename(schema.FilePath) == filename && !slices.Contains(schemaMatches, schema.Identifier) {
			schemaMatches = append(schemaMatches, schema.Identifier)
		}
	}
	if len(schemaMatches) == 1 {
		return schemaMatches[0], nil
	}

	for _, v := range variants {
		if _, found := slices.BinarySearch(a.definitionFiles, v); found {
			return v, nil
		}
	}

	var fileMatches []string
	for _, path := range a.definitionFiles {
		if utils.ExtractFilename(path) == filename {
			fileMatches = append(fileMatches, path)
		}
	}
	if len(schemaMatches) == 0 && len(fileMatches) == 1 {
		return fileMatches[0], nil
	}

	if len(schemaMatches) > 1 {
		var paths []string
		for _, id := range schemaMatches {
			paths = append(paths, a.byKey[id].FilePath)
		}
		return "", paths
	}
	if len(fileMatches) > 1 {
		return "", fileMatches
	}
	return "", nil
}

func (a *analyzer) detectDuplicateIDs() {
	groups := sequencedmap.New[string, []string]()
	for _, schema := range a.schemas {
		if schema.Schema == nil || schema.Schema.ID == "" {
			continue
		}
		paths, _ := groups.Get(schema.Schema.ID)
		groups.Set(schema.Schema.ID, append(paths, schema.FilePath))
	}

	for id, paths := range groups.All() {
		if len(paths) < 2 {
			continue
		}
		a.report.Errors = append(a.report.Errors, fmt.Sprintf("Duplicate $id '%s' found in files: %s", id, strings.Join(paths, ", ")))
	}
}

func (a *analyzer) detectIDConflicts() {
	for _, schema := range a.schemas {
		if schema.Schema == nil || schema.Schema.ID == "" {
			continue
		}
		id := schema.Schema.ID
		if id == schema.FilePath {
			continue
		}
		for _, other := range a.schemas {
			if other != schema && other.FilePath == id {
				a.report.Warnings = append(a.report.Warnings, fmt.Sprintf("%s conflicts with file path %s", id, other.FilePath))
				break
			}
		}
	}
}
