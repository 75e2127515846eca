// Package testsupport holds fixture and golden-file helpers shared by the
// package tests. Goldens are rewritten when UPDATE_GOLDENS is set.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/schema"
)

// LoadSchema parses a schema fixture from disk.
func LoadSchema(t *testing.T, path string) *schema.Node {
	t.Helper()

	node, err := LoadSchemaFromPath(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return node
}

// LoadSchemaFromPath returns a parsed schema without requiring testing.T, for
// callers wiring fixtures in setup functions.
func LoadSchemaFromPath(path string) (*schema.Node, error) {
	if path == "" {
		return nil, errors.New("testsupport: schema path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read schema: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: new document: %w", err)
	}
	return schema.ParseDocument(doc)
}

// LoadSchemaFS parses a schema stored in an fs.FS, e.g. the embedded pages.
func LoadSchemaFS(t *testing.T, files fs.FS, name string) *schema.Node {
	t.Helper()

	data, err := fs.ReadFile(files, name)
	if err != nil {
		t.Fatalf("read schema %s: %v", name, err)
	}
	node, err := schema.Parse(data)
	if err != nil {
		t.Fatalf("parse schema %s: %v", name, err)
	}
	return node
}

// MustLoadObject reads a JSON object fixture keeping its key order.
func MustLoadObject(t *testing.T, path string) *document.Object {
	t.Helper()

	obj, err := document.DecodeObject(MustReadGolden(t, path))
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return obj
}

// CompareDocumentGolden compares doc against the indented code.json layout
// stored at path.
func CompareDocumentGolden(t *testing.T, path string, doc *document.Object) {
	t.Helper()

	got, err := document.EncodeIndent(doc)
	if err != nil {
		t.Fatalf("encode document: %v", err)
	}
	compareBytes(t, path, got)
}

// CompareJSONGolden compares any JSON-marshalable value, rendered with
// two-space indentation, against the golden at path.
func CompareJSONGolden(t *testing.T, path string, value any) {
	t.Helper()

	var buf bytes.Buffer
	enc := gojson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	compareBytes(t, path, buf.Bytes())
}

func compareBytes(t *testing.T, path string, got []byte) {
	t.Helper()

	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := CompareGolden(want, string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
