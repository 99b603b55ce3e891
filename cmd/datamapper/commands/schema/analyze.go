package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/speakeasy-api/datamapper/jsonschema"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dir>",
	Short: "Analyze the dependencies between schema files",
	Long: `Analyze the $ref dependencies between the schema files in a directory.

This command reports:
- The dependency graph between schema files
- The order the files load in
- Circular dependencies
- Missing or ambiguous references
- Duplicate $id values and $id values that shadow another file path

Output formats:
  text  - Human-readable summary (default)
  json  - Machine-readable JSON report`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "text", "output format: text, json")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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
	schemas, err := parseSchemas(files)
	if err != nil {
		return err
	}

	report := jsonschema.Analyze(schemas, files, jsonschema.WithLogger(logger))

	if format == "json" {
		if err := writeReportJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		writeReportText(cmd.OutOrStdout(), report)
	}

	if report.HasErrors() {
		return fmt.Errorf("analysis found %d error(s)", len(report.Errors))
	}
	return nil
}

func writeReportJSON(w io.Writer, report *jsonschema.AnalysisReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func writeReportText(w io.Writer, report *jsonschema.AnalysisReport) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Schemas:      %d\n", report.Nodes.Len())
	p.Fprintf(w, "References:   %d\n", len(report.Edges))
	p.Fprintf(w, "Cycles:       %d\n", len(report.CircularDependencies))
	p.Fprintf(w, "Missing refs: %d\n", len(report.MissingReferences))

	if len(report.LoadOrder) > 0 {
		fmt.Fprintln(w, "\nLoad order:")
		fmt.Fprint(w, formatNumbered(report.LoadOrder))
	}
	if len(report.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		fmt.Fprint(w, formatNumbered(report.Errors))
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		fmt.Fprint(w, formatNumbered(report.Warnings))
	}
}

// formatNumbered renders items as a numbered list with the index column right aligned.
func formatNumbered(items []string) string {
	width := len(fmt.Sprint(len(items)))

	var sb strings.Builder
	for i, item := range items {
		fmt.Fprintf(&sb, "%*d. %s\n", width, i+1, item)
	}
	return sb.String()
}
