package utils

import (
	"strings"
)

const (
	pathSeparator = "/"
	currentDir    = "."
	parentDir     = ".."
)

// NormalizePath collapses "." and ".." segments of a slash separated path.
// A ".." that cannot be resolved against a previous segment is kept, so paths
// escaping above their starting directory still compare consistently.
func NormalizePath(path string) string {
	segments := strings.Split(path, pathSeparator)
	stack := make([]string, 0, len(segments))

	for _, segment := range segments {
		switch segment {
		case currentDir:
			continue
		case parentDir:
			if len(stack) == 0 || stack[len(stack)-1] == parentDir || isRootMarker(stack) {
				stack = append(stack, parentDir)
				continue
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, segment)
		}
	}

	return strings.Join(stack, pathSeparator)
}

// isRootMarker reports whether the only stacked segment is the empty segment
// produced by a leading "/", which must not be popped.
func isRootMarker(stack []string) bool {
	return len(stack) == 1 && stack[0] == ""
}

// IsAbsolutePath reports whether path starts with "/".
func IsAbsolutePath(path string) bool {
	return strings.HasPrefix(path, pathSeparator)
}

// ExtractDirectory returns everything before the last "/" of path.
// ok is false when path has no directory component.
func ExtractDirectory(path string) (dir string, ok bool) {
	idx := strings.LastIndex(path, pathSeparator)
	if idx == -1 {
		return "", false
	}
	return path[:idx], true
}

// ExtractFilename returns everything after the last "/" of path, or path itself.
func ExtractFilename(path string) string {
	idx := strings.LastIndex(path, pathSeparator)
	if idx == -1 {
		return path
	}
	return path[idx+1:]
}

// ResolveRelativePath resolves ref against the directory of basePath.
// Absolute refs are returned normalized and unchanged otherwise.
func ResolveRelativePath(basePath, ref string) string {
	if IsAbsolutePath(ref) {
		return NormalizePath(ref)
	}

	dir, ok := ExtractDirectory(basePath)
	if !ok {
		return NormalizePath(ref)
	}

	return NormalizePath(dir + pathSeparator + ref)
}
