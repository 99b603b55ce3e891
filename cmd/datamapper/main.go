package main

import (
	"fmt"
	"os"
	"runtime/debug"

	schemaCmd "github.com/speakeasy-api/datamapper/cmd/datamapper/commands/schema"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// getVersion returns the ldflags version, falling back to the module version recorded at build time.
func getVersion() string {
	if version != "dev" {
		return version
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return version
}

var rootCmd = &cobra.Command{
	Use:   "datamapper",
	Short: "Inspect the JSON schema definitions behind data mappings",
	Long: `A toolkit for inspecting the JSON schema files a data mapping document is built from.

This CLI provides tools for:
- Analyzing the $ref dependencies between schema files
- Reporting circular dependencies, missing references and conflicting $id values
- Computing the order schema files load in
- Printing the field tree a mapping binds to`,
	Version: version,
}

var schemaCmds = &cobra.Command{
	Use:   "schema",
	Short: "Work with JSON schema definition files",
	Long: `Commands for working with a directory of JSON schema definition files.

Definition files are the .json, .yaml and .yml files found below the directory.
Their paths relative to the directory are the paths $ref values resolve against.`,
}

func init() {
	rootCmd.Version = getVersion()

	versionTemplate := `{{printf "%s" .Version}}`
	if commit != "none" {
		versionTemplate += "\nBuild: " + commit
	}

	rootCmd.SetVersionTemplate(versionTemplate)

	schemaCmd.Apply(schemaCmds)

	rootCmd.AddCommand(schemaCmds)

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
