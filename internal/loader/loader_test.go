package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-codejson/pkg/schema"
)

const payload = `{"type":"object","properties":{"name":{"type":"string"}}}`

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gov", "schema.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := schema.DirLocator{Root: dir}.Locate("gov")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}

	doc, err := New(schema.NewLoaderOptions()).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"schemas/gov/schema.json": &fstest.MapFile{Data: []byte(payload)},
	}
	l := New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), schema.SourceFromFS("schemas/gov/schema.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "schemas/gov/schema.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}

	_, err = l.Load(context.Background(), schema.SourceFromFS("schemas/missing/schema.json"))
	if !errors.Is(err, schema.ErrSchemaLoad) {
		t.Fatalf("expected ErrSchemaLoad, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schemas/gov/schema.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	l := New(schema.NewLoaderOptions(schema.WithHTTPClient(server.Client())))

	doc, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/schemas/gov/schema.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	_, err = l.Load(context.Background(), schema.SourceFromURL(server.URL+"/schemas/other/schema.json"))
	if !errors.Is(err, schema.ErrSchemaLoad) {
		t.Fatalf("expected ErrSchemaLoad for 404, got %v", err)
	}
	var status *StatusError
	if !errors.As(err, &status) || status.Code != http.StatusNotFound {
		t.Fatalf("expected StatusError 404, got %v", err)
	}
}

func TestLoader_HTTPSendsHeaders(t *testing.T) {
	var agent, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	l := New(schema.NewLoaderOptions(schema.WithHTTPFallback(0)))
	if _, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/gov/schema.json")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if agent != userAgent {
		t.Fatalf("unexpected user agent %q", agent)
	}
	if accept == "" {
		t.Fatalf("expected an Accept header")
	}
}

func TestLoader_DirectoriesResolveSchemaFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "gov"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gov", "schema.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := New(schema.NewLoaderOptions(schema.WithFileSystem(os.DirFS(dir))))
	for _, src := range []schema.Source{
		schema.SourceFromFile(filepath.Join(dir, "gov")),
		schema.SourceFromFS("gov"),
	} {
		doc, err := l.Load(context.Background(), src)
		if err != nil {
			t.Fatalf("load %s: %v", src.Location(), err)
		}
		if string(doc.Raw()) != payload {
			t.Fatalf("%s: unexpected payload %q", src.Location(), doc.Raw())
		}
	}
}

func TestLoader_RejectsInvalidFSPaths(t *testing.T) {
	l := New(schema.NewLoaderOptions(schema.WithFileSystem(fstest.MapFS{})))
	for _, name := range []string{"../gov/schema.json", "/gov/schema.json"} {
		_, err := l.Load(context.Background(), schema.SourceFromFS(name))
		if !errors.Is(err, schema.ErrSchemaLoad) {
			t.Fatalf("%s: expected ErrSchemaLoad, got %v", name, err)
		}
	}

	_, err := New(schema.NewLoaderOptions()).Load(context.Background(), schema.SourceFromFS("gov/schema.json"))
	if !errors.Is(err, schema.ErrSchemaLoad) {
		t.Fatalf("expected ErrSchemaLoad without a filesystem, got %v", err)
	}
}

func TestLoader_HTTPDisabled(t *testing.T) {
	l := New(schema.NewLoaderOptions())
	_, err := l.Load(context.Background(), schema.SourceFromURL("https://example.org/schemas/gov/schema.json"))
	if !errors.Is(err, schema.ErrSchemaLoad) {
		t.Fatalf("expected ErrSchemaLoad, got %v", err)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := fstest.MapFS{"gov/schema.json": &fstest.MapFile{Data: []byte(payload)}}
	l := New(schema.NewLoaderOptions(schema.WithFileSystem(files)))
	_, err := l.Load(ctx, schema.SourceFromFS("gov/schema.json"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
