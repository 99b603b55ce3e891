package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/speakeasy-api/datamapper/document"
	"github.com/speakeasy-api/datamapper/jsonschema"
	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document <dir>",
	Short: "Print the field tree built from schema files",
	Long: `Build the mapping document for the schema files in a directory and print its fields.

The primary file holds the root schema. When it is omitted, the only file is used, or
the file that loads last.

Output formats:
  text  - Indented field tree with types and occurrences (default)
  json  - The document as JSON, named type fragments included`,
	Args: cobra.ExactArgs(1),
	RunE: runDocument,
}

func init() {
	documentCmd.Flags().StringP("primary", "p", "", "path of the primary schema file, relative to the directory")
	documentCmd.Flags().StringP("name", "n", "Body", "document name")
	documentCmd.Flags().StringP("format", "f", "text", "output format: text, json")
}

func runDocument(cmd *cobra.Command, args []string) error {
	primary, _ := cmd.Flags().GetString("primary")
	name, _ := cmd.Flags().GetString("name")
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s (expected text or json)", format)
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	files, err := loadDefinitionFiles(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result, err := jsonschema.CreateDocument(&document.DocumentDefinition{
		DocumentType:    document.DocumentTypeSourceBody,
		DefinitionType:  document.DefinitionTypeJSONSchema,
		Name:            name,
		PrimaryFile:     primary,
		DefinitionFiles: files,
	}, jsonschema.WithLogger(logger))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}
	if result.ValidationStatus == jsonschema.ValidationStatusError {
		return fmt.Errorf("failed to create document:\n%s", formatNumbered(result.Errors))
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Document); err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		return nil
	}

	writeFieldTree(w, result.Document)
	return nil
}

// writeFieldTree prints every field reachable from the root, expanding named type fragments. A field already on the
// current path is printed once more and marked recursive.
func writeFieldTree(w io.Writer, doc *document.JSONSchemaDocument) {
	onPath := map[*document.JSONSchemaField]bool{}

	var write func(f *document.JSONSchemaField, depth int)
	write = func(f *document.JSONSchemaField, depth int) {
		indent := strings.Repeat("  ", depth)
		if onPath[f] {
			fmt.Fprintf(w, "%s%s (recursive)\n", indent, fieldLabel(f, depth))
			return
		}
		fmt.Fprintf(w, "%s%s: %s %s\n", indent, fieldLabel(f, depth), f.Type, occursLabel(f))

		onPath[f] = true
		for _, child := range doc.ResolveChildren(f) {
			write(child, depth+1)
		}
		delete(onPath, f)
	}

	for _, f := range doc.Fields {
		write(f, 0)
	}
}

func fieldLabel(f *document.JSONSchemaField, depth int) string {
	switch {
	case f.Key != "":
		return f.Key
	case depth == 0:
		return "(root)"
	default:
		return "[]"
	}
}

func occursLabel(f *document.JSONSchemaField) string {
	maxOccurs := fmt.Sprint(f.MaxOccurs)
	if f.MaxOccurs == document.Unbounded {
		maxOccurs = "*"
	}
	return fmt.Sprintf("[%d..%s]", f.MinOccurs, maxOccurs)
}
