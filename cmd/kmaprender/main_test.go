package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func markup(payload string) string {
	return `<div class="kmap-cl-install">` + strings.ReplaceAll(payload, `"`, "&quot;") + "</div>\n"
}

func TestRenderMergesPresetsWeakestFirst(t *testing.T) {
	dir := t.TempDir()
	course := writeFile(t, dir, "course.yaml", "size: 4\nfixed: true\nlabels: [A, B, C, D]\noptions:\n  theme: dark\n")
	assignment := writeFile(t, dir, "q1.toml", "size = 2\nminterms = [1, 2]\n\n[options]\nlang = \"en\"\n")

	out, _, err := execute(t, "", "render", "--preset", course, "--preset", assignment)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := markup(`{"lang":"en","theme":"dark","size":2,"fixed":true,"minterms":[1,2],"labels":["A","B","C","D"]}`)
	if out != want {
		t.Fatalf("render mismatch:\nwant: %s\n got: %s", want, out)
	}
}

func TestRenderAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "base.json", `{"size": 3, "dontcares": [4]}`)

	out, _, err := execute(t, "",
		"render", "-p", preset,
		"--set", "size=4",
		"--set", "resultSel=#out",
		"--set", "test=true",
		"--set", "appTag=cse260",
		"--option", "theme=dark",
		"--api-test", "/api/test",
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := markup(`{"theme":"dark","size":4,"resultSel":"#out","expressionSel":null,"success":"success","dontcare":[4],"testAPI":"/api/test","appTag":"cse260"}`)
	if out != want {
		t.Fatalf("render mismatch:\nwant: %s\n got: %s", want, out)
	}
}

func TestRenderFailsOnUnknownProperties(t *testing.T) {
	out, stderr, err := execute(t, "", "render", "--set", "sizes=4", "--set", "Fixed=true")
	if err == nil || !strings.Contains(err.Error(), "2 setting(s) rejected") {
		t.Fatalf("expected rejection error, got %v", err)
	}
	if out != markup(`{"size":3}`) {
		t.Fatalf("expected default markup to still be printed, got %q", out)
	}
	if !strings.Contains(stderr, "undefined property") || !strings.Contains(stderr, "sizes") {
		t.Fatalf("expected diagnostics on stderr, got %q", stderr)
	}
}

func TestRenderStoresValuesAsGiven(t *testing.T) {
	out, _, err := execute(t, "", "render", "--set", "fixed=maybe", "--set", "size=\"4\"")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := markup(`{"size":"4","fixed":"maybe"}`); out != want {
		t.Fatalf("render mismatch:\nwant: %s\n got: %s", want, out)
	}
}

func TestRenderKeepsNumericTextProperties(t *testing.T) {
	out, _, err := execute(t, "",
		"render",
		"--set", "appTag=123",
		"--set", "name=2024",
		"--set", "test=true",
		"--api-test", "/api/test",
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := markup(`{"size":3,"testAPI":"/api/test","name":"2024","appTag":"123"}`); out != want {
		t.Fatalf("render mismatch:\nwant: %s\n got: %s", want, out)
	}
}

func TestRenderRejectsUnknownPresetKeys(t *testing.T) {
	preset := writeFile(t, t.TempDir(), "bad.yml", "sizes: 4\n")
	if _, _, err := execute(t, "", "render", "--preset", preset); err == nil || !strings.Contains(err.Error(), "sizes") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestRenderRejectsUnsupportedPresetFormat(t *testing.T) {
	preset := writeFile(t, t.TempDir(), "preset.ini", "size=4\n")
	if _, _, err := execute(t, "", "render", "--preset", preset); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestInspectRoundTripsEncodedMarkup(t *testing.T) {
	rendered, _, err := execute(t, "", "render", "--set", "minterms=[0,3]", "--encode")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out, _, err := execute(t, rendered, "inspect", "--encoded", "-")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	want := "{\n  \"size\": 3,\n  \"minterms\": [\n    0,\n    3\n  ]\n}\n"
	if out != want {
		t.Fatalf("inspect mismatch:\nwant: %q\n got: %q", want, out)
	}
}

func TestInspectRejectsForeignMarkup(t *testing.T) {
	if _, _, err := execute(t, "", "inspect", "<div>{}</div>"); err == nil {
		t.Fatalf("expected malformed markup error")
	}
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := execute(t, "", "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("schema output is not JSON: %v", err)
	}
	if doc["type"] != "object" {
		t.Fatalf("expected object schema, got %v", doc["type"])
	}

	out, _, err = execute(t, "", "schema", "--format", "descriptors")
	if err != nil {
		t.Fatalf("schema descriptors: %v", err)
	}
	var descriptors []map[string]any
	if err := json.Unmarshal([]byte(out), &descriptors); err != nil || len(descriptors) != 20 {
		t.Fatalf("expected 20 descriptors, got %d (%v)", len(descriptors), err)
	}

	if _, _, err := execute(t, "", "schema", "--format", "xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestParseAssignment(t *testing.T) {
	cases := []struct {
		arg   string
		key   string
		value any
	}{
		{"size=4", "size", float64(4)},
		{"fixed=true", "fixed", true},
		{"theme=dark", "theme", "dark"},
		{"minterms=null", "minterms", nil},
		{"appTag=cse260", "appTag", "cse260"},
		{"appTag=123", "appTag", "123"},
		{"name=", "name", ""},
		{"resultSel=null", "resultSel", "null"},
	}
	for _, tc := range cases {
		key, value, err := parseAssignment(tc.arg, textProperties)
		if err != nil {
			t.Fatalf("parseAssignment(%q): %v", tc.arg, err)
		}
		if key != tc.key || value != tc.value {
			t.Fatalf("parseAssignment(%q) = %q, %#v", tc.arg, key, value)
		}
	}
	if _, value, _ := parseAssignment("appTag=123", nil); value != float64(123) {
		t.Fatalf("options decode JSON regardless of name, got %#v", value)
	}
	if _, _, err := parseAssignment("novalue", textProperties); err == nil {
		t.Fatalf("expected missing '=' error")
	}
}
