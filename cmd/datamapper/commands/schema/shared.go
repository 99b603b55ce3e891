package schema

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/speakeasy-api/datamapper/jsonschema"
	"github.com/speakeasy-api/datamapper/system"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newLogger builds the logger handed to the library, at debug level when --verbose is set.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	config.Encoding = "console"
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func loadDefinitionFiles(ctx context.Context, dir string) (map[string]string, error) {
	files, err := system.LoadDefinitionFiles(ctx, &system.FileSystem{}, dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no definition files found in %s", dir)
	}
	return files, nil
}

// parseSchemas parses files in lexical path order.
func parseSchemas(files map[string]string) ([]*jsonschema.SchemaMetadata, error) {
	schemas := make([]*jsonschema.SchemaMetadata, 0, len(files))
	for _, filePath := range slices.Sorted(maps.Keys(files)) {
		metadata, err := jsonschema.ParseSchema(filePath, []byte(files[filePath]))
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, metadata)
	}
	return schemas, nil
}
