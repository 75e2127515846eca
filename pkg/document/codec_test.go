package document_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-codejson/pkg/document"
)

func TestDecode_PreservesKeyOrder(t *testing.T) {
	raw := []byte(`{"zeta": 1, "alpha": {"b": true, "a": false}, "mid": ["x", null, 2.5]}`)

	value, err := document.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj, ok := value.(*document.Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", value)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, obj.Keys()); diff != "" {
		t.Fatalf("top-level key order mismatch (-want +got):\n%s", diff)
	}

	nestedRaw, _ := obj.Get("alpha")
	nested := nestedRaw.(*document.Object)
	if diff := cmp.Diff([]string{"b", "a"}, nested.Keys()); diff != "" {
		t.Fatalf("nested key order mismatch (-want +got):\n%s", diff)
	}

	number, _ := obj.Get("zeta")
	if number != document.Number("1") {
		t.Fatalf("expected number literal 1, got %#v", number)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := document.Decode([]byte("   ")); !errors.Is(err, document.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := document.Decode([]byte(`{"a":1} {"b":2}`)); err == nil {
		t.Fatalf("expected error for trailing data")
	}
	if _, err := document.DecodeObject([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected error for non-object payload")
	}
}

func TestDecodeYAML_PreservesKeyOrder(t *testing.T) {
	raw := []byte(`
type: object
properties:
  name:
    type: string
  count:
    type: integer
    default: 3
  ratio: 0.5
  enabled: true
  missing: null
`)
	value, err := document.DecodeYAML(raw)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	obj := value.(*document.Object)
	propsRaw, _ := obj.Get("properties")
	props := propsRaw.(*document.Object)

	if diff := cmp.Diff([]string{"name", "count", "ratio", "enabled", "missing"}, props.Keys()); diff != "" {
		t.Fatalf("yaml key order mismatch (-want +got):\n%s", diff)
	}

	ratio, _ := props.Get("ratio")
	if ratio != document.Number("0.5") {
		t.Fatalf("expected ratio 0.5, got %#v", ratio)
	}
	enabled, _ := props.Get("enabled")
	if enabled != true {
		t.Fatalf("expected enabled true, got %#v", enabled)
	}
	missing, ok := props.Get("missing")
	if !ok || missing != nil {
		t.Fatalf("expected explicit null, got %#v (present=%v)", missing, ok)
	}
}

func TestDecodeAuto_FallsBackToYAML(t *testing.T) {
	value, err := document.DecodeAuto([]byte("name: demo\ntags:\n  - a\n  - b\n"))
	if err != nil {
		t.Fatalf("decode auto: %v", err)
	}
	got := document.Plain(value)
	want := map[string]any{"name": "demo", "tags": []any{"a", "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plain mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_KeepsOrderAndSkipsHTMLEscaping(t *testing.T) {
	obj := document.ObjectOf(
		"name", "a & b <c>",
		"count", document.Number("12"),
		"tags", []any{"x", true, nil},
		"nested", document.ObjectOf("z", 1, "a", 2.5),
	)

	raw, err := document.Encode(obj)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"name":"a & b <c>","count":12,"tags":["x",true,null],"nested":{"z":1,"a":2.5}}`
	if diff := cmp.Diff(want, string(raw)); diff != "" {
		t.Fatalf("encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeIndent_RoundTrip(t *testing.T) {
	raw := []byte(`{"b":1,"a":[{"y":"1","x":"2"}]}`)
	value, err := document.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	pretty, err := document.EncodeIndent(value)
	if err != nil {
		t.Fatalf("encode indent: %v", err)
	}
	want := "{\n  \"b\": 1,\n  \"a\": [\n    {\n      \"y\": \"1\",\n      \"x\": \"2\"\n    }\n  ]\n}\n"
	if diff := cmp.Diff(want, string(pretty)); diff != "" {
		t.Fatalf("indent mismatch (-want +got):\n%s", diff)
	}

	again, err := document.Decode(pretty)
	if err != nil {
		t.Fatalf("decode pretty: %v", err)
	}
	compact, err := document.Encode(again)
	if err != nil {
		t.Fatalf("encode compact: %v", err)
	}
	if string(compact) != string(raw) {
		t.Fatalf("round trip mismatch: %s", compact)
	}
}

func TestObject_SetDeleteClone(t *testing.T) {
	obj := document.ObjectOf("a", 1, "b", 2, "c", 3)
	obj.Set("b", 20)
	obj.Delete("a")
	obj.Set("a", 10)

	if diff := cmp.Diff([]string{"b", "c", "a"}, obj.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	clone := obj.Clone()
	clone.Set("d", 4)
	if obj.Has("d") {
		t.Fatalf("clone must not share storage with the original")
	}
	if clone.Len() != 4 {
		t.Fatalf("expected clone length 4, got %d", clone.Len())
	}
}
