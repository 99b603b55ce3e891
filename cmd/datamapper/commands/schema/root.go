package schema

import "github.com/spf13/cobra"

// Apply adds the schema commands to rootCmd.
func Apply(rootCmd *cobra.Command) {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(documentCmd)
}
