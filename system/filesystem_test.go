package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_Open_Success(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.json")
	testContent := []byte(`{"type": "string"}`)
	err := os.WriteFile(testFile, testContent, 0o644)
	require.NoError(t, err, "should create test file")

	fsys := &FileSystem{}
	file, err := fsys.Open(testFile)

	require.NoError(t, err, "should open file successfully")
	require.NotNil(t, file, "should return non-nil file")
	defer file.Close()

	content := make([]byte, len(testContent))
	n, err := file.Read(content)
	require.NoError(t, err, "should read file content")
	assert.Equal(t, len(testContent), n, "should read correct number of bytes")
	assert.Equal(t, testContent, content, "should read correct content")
}

func TestFileSystem_Open_Error(t *testing.T) {
	t.Parallel()

	fsys := &FileSystem{}
	file, err := fsys.Open("nonexistent-file.json")

	assert.Error(t, err, "should return error for nonexistent file")
	assert.Nil(t, file, "should return nil file on error")
}

func TestIsDefinitionFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected bool
	}{
		{name: "a.json", expected: true},
		{name: "dir/a.yaml", expected: true},
		{name: "A.YML", expected: true},
		{name: "a.txt", expected: false},
		{name: "json", expected: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsDefinitionFile(tt.name), "IsDefinitionFile(%q)", tt.name)
	}
}

func TestLoadDefinitionFiles_Success(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"schemas/customer.json":        {Data: []byte(`{"$ref": "./common/address.json"}`)},
		"schemas/common/address.json":  {Data: []byte(`{"type": "object"}`)},
		"schemas/order.yaml":           {Data: []byte("type: object\n")},
		"schemas/README.md":            {Data: []byte("# schemas")},
		"schemas/.cache/stale.json":    {Data: []byte(`{}`)},
		"other/ignored.json":           {Data: []byte(`{}`)},
		"schemas/nested/deep/line.yml": {Data: []byte("type: string\n")},
	}

	files, err := LoadDefinitionFiles(t.Context(), fsys, "schemas")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"customer.json":        `{"$ref": "./common/address.json"}`,
		"common/address.json":  `{"type": "object"}`,
		"order.yaml":           "type: object\n",
		"nested/deep/line.yml": "type: string\n",
	}, files)
}

func TestLoadDefinitionFiles_Root_Success(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.json":   {Data: []byte(`{}`)},
		"b/c.yaml": {Data: []byte("{}")},
	}

	files, err := LoadDefinitionFiles(t.Context(), fsys, ".")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, "b/c.yaml")
}

func TestLoadDefinitionFiles_OperatingSystem_Success(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "common"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "main.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "common", "types.json"), []byte(`{"type": "string"}`), 0o644))

	files, err := LoadDefinitionFiles(t.Context(), &FileSystem{}, filepath.ToSlash(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"main.json":         `{}`,
		"common/types.json": `{"type": "string"}`,
	}, files)
}

func TestLoadDefinitionFiles_Error(t *testing.T) {
	t.Parallel()

	_, err := LoadDefinitionFiles(t.Context(), fstest.MapFS{}, "missing")
	require.Error(t, err, "a missing root should fail")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = LoadDefinitionFiles(ctx, fstest.MapFS{"a.json": {Data: []byte(`{}`)}}, ".")
	require.Error(t, err, "a cancelled context should stop reading")
}
