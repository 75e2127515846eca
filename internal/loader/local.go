package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/goliatone/go-codejson/pkg/schema"
)

// loadFile reads a page schema from disk. A directory is taken to be a page
// directory and its schema.json is read instead.
func loadFile(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		abs = filepath.Join(abs, schema.SchemaFileName)
	}
	return os.ReadFile(abs)
}

// loadFromFS reads a page schema from an fs.FS such as the embedded pages.
func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if files == nil {
		return nil, errors.New("no filesystem configured for fs sources")
	}
	if name == "" || !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid fs path %q", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := fs.Stat(files, name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		name = path.Join(name, schema.SchemaFileName)
	}
	return fs.ReadFile(files, name)
}
