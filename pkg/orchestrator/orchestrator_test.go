package orchestrator_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-codejson/internal/loader"
	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/model"
	"github.com/goliatone/go-codejson/pkg/orchestrator"
	"github.com/goliatone/go-codejson/pkg/schema"
)

const agencySchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "platforms": {"type": "array", "items": {"type": "string", "enum": ["web", "ios"]}},
    "localisation": {"type": "boolean"},
    "date": {
      "type": "object",
      "properties": {"created": {"type": "string"}, "lastModified": {"type": "string"}}
    }
  },
  "required": ["name", "localisation"]
}`

func newTestOrchestrator(files fstest.MapFS, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{
		orchestrator.WithLoader(loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))),
		orchestrator.WithLocator(schema.FSLocator{}),
	}
	return orchestrator.New(append(base, opts...)...)
}

func agencyFS() fstest.MapFS {
	return fstest.MapFS{
		"agency/schema.json": {Data: []byte(agencySchema)},
		"broken/schema.json": {Data: []byte(`{"type":"object","properties":{"tags":{"type":"array"}}}`)},
		"garbled/schema.json": {Data: []byte(`{"type":`)},
	}
}

func TestOrchestrator_CompileEmbeddedDefaultPage(t *testing.T) {
	orch := orchestrator.New()

	components, err := orch.Compile(context.Background(), "")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	node, err := orch.Schema(context.Background(), schema.DefaultPage)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	var keys []string
	for _, c := range components {
		keys = append(keys, c.Key)
	}
	want := append(node.PropertyNames(), "gh_api_key", "submit")
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("root keys mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_LoadFailures(t *testing.T) {
	orch := newTestOrchestrator(agencyFS())

	for _, page := range []string{"missing", "garbled"} {
		components, err := orch.Compile(context.Background(), page)
		if !errors.Is(err, schema.ErrSchemaLoad) {
			t.Fatalf("%s: expected ErrSchemaLoad, got %v", page, err)
		}
		if components != nil {
			t.Fatalf("%s: expected no components", page)
		}
	}

	if _, err := orch.Compile(context.Background(), "../agency"); !errors.Is(err, schema.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
}

func TestOrchestrator_CompileFailureIsStructural(t *testing.T) {
	orch := newTestOrchestrator(agencyFS())

	components, err := orch.Compile(context.Background(), "broken")
	if !errors.Is(err, model.ErrUnsupportedFieldType) {
		t.Fatalf("expected ErrUnsupportedFieldType, got %v", err)
	}
	if components != nil {
		t.Fatalf("expected no components")
	}
}

func TestOrchestrator_Reduce(t *testing.T) {
	orch := newTestOrchestrator(agencyFS(), orchestrator.WithSchemaOrder(true))
	data, err := document.DecodeObject([]byte(`{
		"date": {"lastModified": "2024-02-01", "created": "2023-01-01"},
		"gh_api_key": "token",
		"platforms": {"web": true, "ios": false},
		"localisation": "false",
		"name": "x",
		"submit": true
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	result, err := orch.Reduce(context.Background(), "agency", data)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	raw, err := document.Encode(result.Document)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"name":"x","platforms":["web"],"localisation":false,"date":{"created":"2023-01-01","lastModified":"2024-02-01"}}`
	if diff := cmp.Diff(want, string(raw)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %#v", result.Issues)
	}
}

func TestOrchestrator_ReduceReportsIssues(t *testing.T) {
	orch := newTestOrchestrator(agencyFS())
	data, err := document.DecodeObject([]byte(`{"name":"","platforms":{"web":"yes"},"localisation":"true"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	result, err := orch.Reduce(context.Background(), "agency", data)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}

	fields := map[string]bool{}
	for _, issue := range result.Issues {
		fields[issue.Field] = true
	}
	if !fields["platforms"] {
		t.Fatalf("expected skipped platforms issue, got %#v", result.Issues)
	}
	if !fields["name"] {
		t.Fatalf("expected missing required name issue, got %#v", result.Issues)
	}

	orch = newTestOrchestrator(agencyFS(), orchestrator.WithValidation(false))
	result, err = orch.Reduce(context.Background(), "agency", data)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected only the skipped field issue, got %#v", result.Issues)
	}
}

func TestOrchestrator_Decorators(t *testing.T) {
	preset, err := orchestrator.NewJSONPresetDecoratorFromFS(fstest.MapFS{
		"preset.json": {Data: []byte(`{"components":{"date.created":{"label":"Created on"}}}`)},
	}, "preset.json")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	orch := newTestOrchestrator(agencyFS(),
		orchestrator.WithDecorators(preset),
		orchestrator.WithCompileOptions(model.WithoutCredentialField(), model.WithoutSubmitAction()),
	)

	components, err := orch.Compile(context.Background(), "agency")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(components) != 4 {
		t.Fatalf("expected 4 components without scaffolding, got %d", len(components))
	}
	if got := components[3].Children[0].Label; got != "Created on" {
		t.Fatalf("expected preset label, got %q", got)
	}

	stale, err := orchestrator.NewJSONPresetDecorator([]byte(`{"components":{"gone":{"label":"x"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	orch = newTestOrchestrator(agencyFS(), orchestrator.WithDecorators(stale))
	if _, err := orch.Compile(context.Background(), "agency"); err == nil {
		t.Fatalf("expected stale preset to fail")
	}
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := orchestrator.New().Compile(ctx, "gov"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPageHeading(t *testing.T) {
	gov := orchestrator.PageHeading("")
	if gov.Page != "gov" || gov.Title != "Welcome to Gov Code.json Generator!" {
		t.Fatalf("unexpected gov heading: %+v", gov)
	}
	cms := orchestrator.PageHeading("cms")
	if cms.Title != "Welcome to CMS Code.json Generator!" {
		t.Fatalf("unexpected agency heading: %+v", cms)
	}
}
