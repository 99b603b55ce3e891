package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "empty path", path: "", expected: ""},
		{name: "plain file", path: "Order.json", expected: "Order.json"},
		{name: "current dir prefix", path: "./Order.json", expected: "Order.json"},
		{name: "parent dir resolved", path: "a/b/../c.json", expected: "a/c.json"},
		{name: "multiple current dirs", path: "./a/./b/./c.json", expected: "a/b/c.json"},
		{name: "leading parent kept", path: "../c.json", expected: "../c.json"},
		{name: "stacked parents kept", path: "../../c.json", expected: "../../c.json"},
		{name: "escape after pop", path: "a/../../c.json", expected: "../c.json"},
		{name: "absolute path", path: "/schemas/./x/../y.json", expected: "/schemas/y.json"},
		{name: "absolute root escape kept", path: "/../y.json", expected: "/../y.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NormalizePath(tt.path))
		})
	}
}

func TestIsAbsolutePath_Success(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAbsolutePath("/a/b.json"))
	assert.False(t, IsAbsolutePath("a/b.json"))
	assert.False(t, IsAbsolutePath("./b.json"))
	assert.False(t, IsAbsolutePath(""))
}

func TestExtractDirectory_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		expectedDir string
		expectedOK  bool
	}{
		{name: "no directory", path: "a.json", expectedDir: "", expectedOK: false},
		{name: "empty", path: "", expectedDir: "", expectedOK: false},
		{name: "nested", path: "schemas/common/a.json", expectedDir: "schemas/common", expectedOK: true},
		{name: "root file", path: "/a.json", expectedDir: "", expectedOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir, ok := ExtractDirectory(tt.path)
			assert.Equal(t, tt.expectedDir, dir)
			assert.Equal(t, tt.expectedOK, ok)
		})
	}
}

func TestExtractFilename_Success(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.json", ExtractFilename("schemas/common/a.json"))
	assert.Equal(t, "a.json", ExtractFilename("a.json"))
	assert.Equal(t, "", ExtractFilename("schemas/"))
	assert.Equal(t, "", ExtractFilename(""))
}

func TestResolveRelativePath_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		ref      string
		expected string
	}{
		{name: "sibling file", base: "schemas/Order.json", ref: "./Customer.json", expected: "schemas/Customer.json"},
		{name: "parent directory", base: "schemas/orders/Order.json", ref: "../common/Address.json", expected: "schemas/common/Address.json"},
		{name: "base without directory", base: "Order.json", ref: "./Customer.json", expected: "Customer.json"},
		{name: "absolute ref", base: "schemas/Order.json", ref: "/types/./Id.json", expected: "/types/Id.json"},
		{name: "absolute base", base: "/Order.json", ref: "Customer.json", expected: "/Customer.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ResolveRelativePath(tt.base, tt.ref))
		})
	}
}
