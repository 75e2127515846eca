package reducer_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-codejson/pkg/document"
	"github.com/goliatone/go-codejson/pkg/reducer"
	"github.com/goliatone/go-codejson/pkg/schema"
)

func mustDecode(t *testing.T, raw string) *document.Object {
	t.Helper()
	obj, err := document.DecodeObject([]byte(raw))
	if err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return obj
}

func encode(t *testing.T, value any) string {
	t.Helper()
	raw, err := document.Encode(value)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(raw)
}

func TestReduce_EndToEndEmptyArrayDropped(t *testing.T) {
	data := mustDecode(t, `{"name":"x","tags":[]}`)

	got, err := reducer.Reduce(data, []string{"name", "tags"})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if diff := cmp.Diff(`{"name":"x"}`, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_SkipsVacantValues(t *testing.T) {
	data := mustDecode(t, `{
		"name": "",
		"description": null,
		"contributors": [{}],
		"licenses": [{"name": "", "URL": null}],
		"contact": {},
		"status": "production"
	}`)
	order := []string{"name", "description", "contributors", "licenses", "contact", "status", "missing"}

	got, err := reducer.Reduce(data, order)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if diff := cmp.Diff(`{"status":"production"}`, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_FollowsFieldOrder(t *testing.T) {
	data := mustDecode(t, `{"b":"2","submit":true,"a":"1","gh_api_key":"secret","c":"3"}`)

	got, err := reducer.Reduce(data, []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if diff := cmp.Diff(`{"c":"3","a":"1","b":"2"}`, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_CollapsesSelectionMap(t *testing.T) {
	data := mustDecode(t, `{"platforms":{"a":true,"b":false,"c":true},"none":{"x":false}}`)

	got, err := reducer.Reduce(data, []string{"platforms", "none"})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if diff := cmp.Diff(`{"platforms":["a","c"]}`, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_RecursesIntoNestedObjects(t *testing.T) {
	data := mustDecode(t, `{
		"permissions": {
			"usageType": {"openSource": true, "governmentWideReuse": false},
			"exemptionText": "",
			"licenses": [{"name": "MIT", "URL": ""}]
		},
		"reuseFrequency": {"forks": 2},
		"date": {"lastModified": "2024-01-02", "created": "2023-05-06"}
	}`)

	got, err := reducer.Reduce(data, []string{"permissions", "reuseFrequency", "date"})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	want := `{"permissions":{"usageType":["openSource"],"licenses":[{"name":"MIT","URL":""}]},` +
		`"reuseFrequency":{"forks":2},"date":{"lastModified":"2024-01-02","created":"2023-05-06"}}`
	if diff := cmp.Diff(want, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_OmitsNestedObjectsThatReduceToNothing(t *testing.T) {
	data := mustDecode(t, `{"contact":{"email":"","name":null},"name":"x"}`)

	got, err := reducer.Reduce(data, []string{"name", "contact"})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if diff := cmp.Diff(`{"name":"x"}`, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_SchemaOrderForNestedObjects(t *testing.T) {
	root, err := schema.Parse([]byte(`{
		"type": "object",
		"properties": {
			"date": {
				"type": "object",
				"properties": {
					"created": {"type": "string"},
					"lastModified": {"type": "string"}
				}
			}
		}
	}`))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	data := mustDecode(t, `{"date":{"extra":"e","lastModified":"2024-01-02","created":"2023-05-06"}}`)

	got, err := reducer.Reduce(data, root.PropertyNames(), reducer.WithSchemaOrder(root))
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	want := `{"date":{"created":"2023-05-06","lastModified":"2024-01-02","extra":"e"}}`
	if diff := cmp.Diff(want, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_HintsTagSelectionsAndBooleans(t *testing.T) {
	data := mustDecode(t, `{
		"platforms": {"web": true, "ios": false},
		"localisation": "true",
		"flags": {"a": true, "b": false},
		"permissions": {"usageType": {"openSource": true}, "exemptionText": "n/a"}
	}`)
	hints := reducer.Hints{
		Selections: []string{"platforms", "permissions.usageType"},
		Booleans:   []string{"localisation"},
	}

	got, err := reducer.Reduce(data, []string{"platforms", "localisation", "flags", "permissions"}, reducer.WithHints(hints))
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	want := `{"platforms":["web"],"localisation":true,"flags":{"a":true,"b":false},` +
		`"permissions":{"usageType":["openSource"],"exemptionText":"n/a"}}`
	if diff := cmp.Diff(want, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_MalformedSelectionMapSkipsField(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	data := mustDecode(t, `{"name":"x","platforms":{"web":true,"ios":"yes"},"localisation":"maybe"}`)
	hints := reducer.Hints{Selections: []string{"platforms"}, Booleans: []string{"localisation"}}

	got, err := reducer.Reduce(data, []string{"name", "platforms", "localisation"},
		reducer.WithHints(hints), reducer.WithLogger(zap.New(core)))
	if err == nil {
		t.Fatalf("expected field errors")
	}
	if !errors.Is(err, reducer.ErrMalformedSelectionMap) {
		t.Fatalf("expected ErrMalformedSelectionMap, got %v", err)
	}
	if !errors.Is(err, reducer.ErrInvalidBoolean) {
		t.Fatalf("expected ErrInvalidBoolean, got %v", err)
	}
	if diff := cmp.Diff(`{"name":"x"}`, encode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}

	var fields []string
	for _, fieldErr := range reducer.FieldErrors(err) {
		fields = append(fields, fieldErr.Field)
	}
	if diff := cmp.Diff([]string{"platforms", "localisation"}, fields); diff != "" {
		t.Fatalf("skipped fields mismatch (-want +got):\n%s", diff)
	}
	if logs.Len() != 2 {
		t.Fatalf("expected 2 warnings, got %d", logs.Len())
	}
	if field := logs.All()[0].ContextMap()["field"]; field != "platforms" {
		t.Fatalf("expected field context %q, got %v", "platforms", field)
	}
}

func TestReduce_Idempotent(t *testing.T) {
	inputs := []string{
		`{"name":"x","tags":[],"platforms":{"a":true,"b":false,"c":true}}`,
		`{"contact":{"email":"e@example.gov","name":"","phone":null},"single":{"k":""}}`,
		`{"permissions":{"usageType":{"openSource":true},"licenses":[{"name":"MIT"}],"exemptionText":""},"labor":12}`,
		`{"nested":{"a":{"b":"1","c":{"x":true}},"d":"2"},"empty":{}}`,
		`{"f":{"a":true,"b":""}}`,
		`{"f":{"a":[],"b":true,"c":false}}`,
		`{"f":{"a":true,"b":{"x":"","y":null}}}`,
	}
	order := []string{"name", "tags", "platforms", "contact", "single", "permissions", "labor", "nested", "empty", "f"}

	for _, input := range inputs {
		once, err := reducer.Reduce(mustDecode(t, input), order)
		if err != nil {
			t.Fatalf("reduce %s: %v", input, err)
		}
		twice, err := reducer.Reduce(once, order)
		if err != nil {
			t.Fatalf("reduce twice %s: %v", input, err)
		}
		if diff := cmp.Diff(encode(t, once), encode(t, twice)); diff != "" {
			t.Fatalf("reduce not idempotent for %s (-once +twice):\n%s", input, diff)
		}
	}
}

func TestReduce_NilData(t *testing.T) {
	got, err := reducer.Reduce(nil, []string{"name"})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if got.Len() != 0 {
		t.Fatalf("expected empty document, got %s", encode(t, got))
	}
}

func TestReduce_CollapsesSelectionLeftAfterDroppingVacantOptions(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: `{"f":{"a":true,"b":""}}`, want: `{"f":["a"]}`},
		{input: `{"f":{"a":[],"b":true,"c":false}}`, want: `{"f":["b"]}`},
		{input: `{"f":{"a":false,"b":null}}`, want: `{}`},
		{input: `{"f":{"a":"x","b":""}}`, want: `{"f":{"a":"x"}}`},
	}
	for _, tc := range cases {
		got, err := reducer.Reduce(mustDecode(t, tc.input), []string{"f"})
		if err != nil {
			t.Fatalf("reduce %s: %v", tc.input, err)
		}
		if diff := cmp.Diff(tc.want, encode(t, got)); diff != "" {
			t.Fatalf("reduce %s mismatch (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestReduce_HintsReachIntoSingleKeyContainers(t *testing.T) {
	data := mustDecode(t, `{"permissions":{"usageType":{"openSource":true,"governmentWideReuse":false}},"meta":{"note":"kept"}}`)
	hints := reducer.Hints{Selections: []string{"permissions.usageType"}}
	order := []string{"permissions", "meta"}

	once, err := reducer.Reduce(data, order, reducer.WithHints(hints))
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	want := `{"permissions":{"usageType":["openSource"]},"meta":{"note":"kept"}}`
	if diff := cmp.Diff(want, encode(t, once)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}

	twice, err := reducer.Reduce(once, order, reducer.WithHints(hints))
	if err != nil {
		t.Fatalf("reduce twice: %v", err)
	}
	if diff := cmp.Diff(want, encode(t, twice)); diff != "" {
		t.Fatalf("second pass mismatch (-want +got):\n%s", diff)
	}
}
