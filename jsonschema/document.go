package jsonschema

import (
	"fmt"

	"github.com/speakeasy-api/datamapper/document"
	"go.uber.org/zap"
)

// ValidationStatus is the outcome of a document build.
type ValidationStatus string

const (
	ValidationStatusSuccess ValidationStatus = "success"
	ValidationStatusWarning ValidationStatus = "warning"
	ValidationStatusError   ValidationStatus = "error"
)

// CreateDocumentResult is the outcome of CreateDocument. Document is nil when ValidationStatus is error.
type CreateDocumentResult struct {
	ValidationStatus   ValidationStatus             `json:"validationStatus"`
	Document           *document.JSONSchemaDocument `json:"document,omitempty"`
	PrimitiveDocument  *document.PrimitiveDocument  `json:"primitiveDocument,omitempty"`
	Warnings           []string                     `json:"warnings,omitempty"`
	Errors             []string                     `json:"errors,omitempty"`
	DocumentDefinition *document.DocumentDefinition `json:"documentDefinition"`
	Analysis           *AnalysisReport              `json:"analysis,omitempty"`
	Collection         *Collection                  `json:"-"`
}

// CreateDocument parses the definition files, analyzes their references and builds the field tree of the primary
// schema. Problems the analysis finds are reported in the result with an error status and no tree is built. An
// error is returned only when building the tree fails, for example on a reference the analysis could not see.
func CreateDocument(definition *document.DocumentDefinition, opts ...Option) (*CreateDocumentResult, error) {
	if definition == nil {
		return nil, fmt.Errorf("document definition is required")
	}
	o := newOptions(opts)

	result := &CreateDocumentResult{DocumentDefinition: definition}

	if definition.DefinitionType == document.DefinitionTypePrimitive {
		result.ValidationStatus = ValidationStatusSuccess
		result.PrimitiveDocument = document.NewPrimitiveDocument(definition)
		return result, nil
	}

	if len(definition.DefinitionFiles) == 0 {
		return errorResult(result, ErrNoDefinitionFiles.Error()), nil
	}

	var schemas []*SchemaMetadata
	var parseErrors []string
	for _, filePath := range definition.FilePaths() {
		metadata, err := ParseSchema(filePath, []byte(definition.DefinitionFiles[filePath]))
		if err != nil {
			parseErrors = append(parseErrors, err.Error())
			continue
		}
		schemas = append(schemas, metadata)
	}
	if len(parseErrors) > 0 {
		return errorResult(result, parseErrors...), nil
	}

	report := Analyze(schemas, definition.DefinitionFiles, opts...)
	result.Analysis = report
	result.Warnings = report.Warnings
	if report.HasErrors() {
		result.Errors = report.Errors
		result.ValidationStatus = ValidationStatusError
		return result, nil
	}
	AnnotateDependencies(report, schemas)

	collection := NewCollection(opts...)
	collection.SetDefinitionFiles(definition.DefinitionFiles)
	for _, schema := range schemas {
		collection.AddJSONSchema(schema)
		collection.AddAlias(schema.Identifier, schema.FilePath, "./"+schema.FilePath)
	}
	result.Collection = collection

	primary, err := selectPrimary(definition, collection, report)
	if err != nil {
		return errorResult(result, err.Error()), nil
	}

	o.logger.Debug("building document",
		zap.String("name", definition.Name),
		zap.String("primary", primary.Identifier),
		zap.Int("schemas", len(schemas)))

	doc := document.NewJSONSchemaDocument(definition)
	b := &builder{
		doc:        doc,
		collection: collection,
		primary:    primary,
		logger:     o.logger,
		active:     map[*Schema]bool{},
	}
	if err := b.populateRoot(); err != nil {
		return nil, err
	}
	updateFieldTypes(doc)

	o.logger.Debug("built document",
		zap.String("name", definition.Name),
		zap.Int("fragments", doc.NamedTypeFragments.Len()))

	result.Document = doc
	result.ValidationStatus = ValidationStatusSuccess
	if report.HasWarnings() {
		result.ValidationStatus = ValidationStatusWarning
	}
	return result, nil
}

func errorResult(result *CreateDocumentResult, errs ...string) *CreateDocumentResult {
	result.ValidationStatus = ValidationStatusError
	result.Errors = append(result.Errors, errs...)
	return result
}

// selectPrimary picks the root schema: the declared primary file, the only file, or the last schema in load order,
// which is the one nothing else is loaded after.
func selectPrimary(definition *document.DocumentDefinition, collection *Collection, report *AnalysisReport) (*SchemaMetadata, error) {
	if definition.PrimaryFile != "" {
		if primary := collection.GetJSONSchema(definition.PrimaryFile); primary != nil {
			return primary, nil
		}
		return nil, ErrPrimaryFileNotFound.Wrapf("'%s' is not one of the definition files", definition.PrimaryFile)
	}

	schemas := collection.GetJSONSchemas()
	if len(schemas) == 1 {
		return schemas[0], nil
	}

	for i := len(report.LoadOrder) - 1; i >= 0; i-- {
		if primary := collection.GetJSONSchema(report.LoadOrder[i]); primary != nil {
			return primary, nil
		}
	}

	return nil, ErrPrimaryFileNotFound.Wrapf("no schema to use as primary")
}
