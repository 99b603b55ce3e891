package system

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the files read at once by LoadDefinitionFiles.
const maxConcurrentReads = 8

type VirtualFS interface {
	fs.FS
}

// FileSystem is a VirtualFS backed by the operating system, names are passed to the os package unchanged.
type FileSystem struct{}

var (
	_ VirtualFS     = (*FileSystem)(nil)
	_ fs.ReadDirFS  = (*FileSystem)(nil)
	_ fs.ReadFileFS = (*FileSystem)(nil)
)

func (fsys *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (fsys *FileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (fsys *FileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// IsDefinitionFile reports whether name has an extension of a JSON or YAML schema file.
func IsDefinitionFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadDefinitionFiles reads every definition file below root. Keys are slash separated paths relative to root so
// relative $ref values between the files resolve. Hidden directories are skipped.
func LoadDefinitionFiles(ctx context.Context, fsys VirtualFS, root string) (map[string]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if IsDefinitionFile(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list definition files in %s: %w", root, err)
	}

	contents := make([]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", p, err)
			}
			contents[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make(map[string]string, len(paths))
	for i, p := range paths {
		files[relativeTo(root, p)] = contents[i]
	}
	return files, nil
}

func relativeTo(root, p string) string {
	if root == "." || root == "" {
		return p
	}
	if rel, ok := strings.CutPrefix(p, strings.TrimSuffix(root, "/")+"/"); ok {
		return rel
	}
	return p
}
