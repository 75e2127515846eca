package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-codejson/pkg/renderers/tui"
)

const agencySchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "platforms": {"type": "array", "items": {"type": "string", "enum": ["web", "ios"]}},
    "localisation": {"type": "boolean"}
  },
  "required": ["name"]
}`

// workspace writes a schema root holding the agency page plus a config file
// pointing at it, and returns the config path.
func workspace(t *testing.T, extra string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "schemas", "agency", "schema.json"), agencySchema)
	config := "schemas:\n  dir: " + filepath.Join(dir, "schemas") + "\n  default_page: agency\nlog:\n  level: error\n" + extra
	path := filepath.Join(dir, "codejson.yaml")
	writeFile(t, path, config)
	return dir, path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func componentKeys(t *testing.T, raw string) []string {
	t.Helper()
	var components []struct {
		Key string `json:"key"`
	}
	if err := gojson.Unmarshal([]byte(raw), &components); err != nil {
		t.Fatalf("decode components: %v\n%s", err, raw)
	}
	keys := make([]string, 0, len(components))
	for _, c := range components {
		keys = append(keys, c.Key)
	}
	return keys
}

func TestCompileCommand(t *testing.T) {
	_, config := workspace(t, "")

	out, _, err := execute(t, "", "--config", config, "compile")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := []string{"name", "platforms", "localisation", "gh_api_key", "submit"}
	if diff := cmp.Diff(want, componentKeys(t, out)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileCommandHonoursFormConfig(t *testing.T) {
	dir, _ := workspace(t, "")
	writeFile(t, filepath.Join(dir, "preset.json"), `{"components":{"name":{"label":"Project name"}}}`)
	_, config := workspace(t, "form:\n  credential_field: false\n  submit_action: false\n  preset: "+filepath.Join(dir, "preset.json")+"\n")

	out, _, err := execute(t, "", "--config", config, "compile")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "platforms", "localisation"}, componentKeys(t, out)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, `"label": "Project name"`) {
		t.Fatalf("expected preset label in output:\n%s", out)
	}
}

func TestCompileCommandSchemaFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	writeFile(t, path, `{"type":"object","properties":{"title":{"type":"string"}}}`)
	_, config := workspace(t, "")

	out, _, err := execute(t, "", "--config", config, "--schema", path, "compile")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if diff := cmp.Diff([]string{"title", "gh_api_key", "submit"}, componentKeys(t, out)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileCommandUnknownPage(t *testing.T) {
	_, config := workspace(t, "")
	if _, _, err := execute(t, "", "--config", config, "--page", "missing", "compile"); err == nil {
		t.Fatal("expected error for missing page")
	}
}

func TestReduceCommand(t *testing.T) {
	_, config := workspace(t, "")
	submission := `{"submit":true,"platforms":{"web":true,"ios":false},"localisation":"maybe","name":"demo"}`

	out, errOut, err := execute(t, submission, "--config", config, "reduce")
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	want := "{\n  \"name\": \"demo\",\n  \"platforms\": [\n    \"web\"\n  ]\n}\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(errOut, "warning: localisation:") {
		t.Fatalf("expected skipped field warning, got %q", errOut)
	}
}

func TestValidateCommand(t *testing.T) {
	dir, config := workspace(t, "")
	valid := filepath.Join(dir, "valid.json")
	invalid := filepath.Join(dir, "invalid.json")
	writeFile(t, valid, `{"name":"demo","platforms":["web"]}`)
	writeFile(t, invalid, `{"platforms":["android"]}`)

	out, _, err := execute(t, "", "--config", config, "validate", "--document", valid)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "valid" {
		t.Fatalf("unexpected output %q", out)
	}

	out, _, err = execute(t, "", "--config", config, "validate", "--document", invalid)
	if !errors.Is(err, errDocumentInvalid) {
		t.Fatalf("expected errDocumentInvalid, got %v", err)
	}
	if !strings.Contains(out, "invalid: name:") {
		t.Fatalf("expected missing name issue, got %q", out)
	}
}

func TestLintCommand(t *testing.T) {
	dir, config := workspace(t, "")
	good := filepath.Join(dir, "schemas", "agency", "schema.json")
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"type":"object","properties":{"tags":{"type":"array"}}}`)

	if _, _, err := execute(t, "", "--config", config, "lint", good); err != nil {
		t.Fatalf("lint good schema: %v", err)
	}

	_, errOut, err := execute(t, "", "--config", config, "lint", good, bad)
	if !errors.Is(err, errLintFailed) {
		t.Fatalf("expected errLintFailed, got %v", err)
	}
	if !strings.Contains(errOut, bad+": tags -> ") {
		t.Fatalf("expected violation for tags, got %q", errOut)
	}
}

type scriptedDriver struct {
	inputs   []string
	selects  []int
	multi    [][]int
	password []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("unexpected input prompt")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Password(context.Context, tui.InputConfig) (string, error) {
	if len(d.password) == 0 {
		return "", errors.New("unexpected password prompt")
	}
	next := d.password[0]
	d.password = d.password[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, errors.New("unexpected confirm prompt")
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("unexpected select prompt")
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	if len(d.multi) == 0 {
		return nil, errors.New("unexpected multi-select prompt")
	}
	next := d.multi[0]
	d.multi = d.multi[1:]
	return next, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestFillCommand(t *testing.T) {
	dir, config := workspace(t, "")
	output := filepath.Join(dir, "code.json")

	driver := &scriptedDriver{
		inputs:   []string{"demo"},
		multi:    [][]int{{1}},
		selects:  []int{2}, // (unset), True, False
		password: []string{""},
	}
	previous := newPromptDriver
	newPromptDriver = func(io.Writer) tui.PromptDriver { return driver }
	t.Cleanup(func() { newPromptDriver = previous })

	_, errOut, err := execute(t, "", "--config", config, "fill", "--output", output)
	if err != nil {
		t.Fatalf("fill: %v\n%s", err, errOut)
	}
	if !strings.Contains(errOut, "Welcome to AGENCY Code.json Generator!") {
		t.Fatalf("expected page heading, got %q", errOut)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "{\n  \"name\": \"demo\",\n  \"platforms\": [\n    \"ios\"\n  ],\n  \"localisation\": false\n}\n"
	if diff := cmp.Diff(want, string(raw)); diff != "" {
		t.Fatalf("code.json mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, expected := range []string{"codejson version:", "Git commit:", "Build date:", "Go version:"} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected output to contain %q, got %q", expected, out)
		}
	}
}
