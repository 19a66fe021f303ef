package openapi

import (
	"encoding/json"
	"reflect"
	"testing"

	kmap "github.com/goliatone/go-kmap"
)

func generate(t *testing.T, opts ...GeneratorOption) map[string]any {
	t.Helper()
	doc, err := NewGenerator(opts...).Generate(kmap.Properties())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Format != kmap.SchemaFormatOpenAPI {
		t.Fatalf("expected openapi format, got %q", doc.Format)
	}
	schema, ok := doc.Document.(map[string]any)
	if !ok {
		t.Fatalf("expected map document, got %T", doc.Document)
	}
	return schema
}

func TestGenerateDescribesPayloadKeys(t *testing.T) {
	schema := generate(t)
	properties := schema["properties"].(map[string]any)

	for _, key := range []string{"size", "fixed", "map", "minterms", "dontcare", "labels", "resultSel", "testAPI", "appTag", "name"} {
		if _, ok := properties[key]; !ok {
			t.Fatalf("expected payload key %q in schema", key)
		}
	}
	for _, key := range []string{"test", "encode", "dontcares"} {
		if _, ok := properties[key]; ok {
			t.Fatalf("did not expect %q in payload schema", key)
		}
	}

	size := properties["size"].(map[string]any)
	if size["type"] != "integer" || size["default"] != 3 {
		t.Fatalf("unexpected size schema %+v", size)
	}
	labels := properties["labels"].(map[string]any)
	if labels["nullable"] != true || labels["type"] != "array" {
		t.Fatalf("unexpected labels schema %+v", labels)
	}
	if !reflect.DeepEqual([]string{"size"}, schema["required"]) {
		t.Fatalf("unexpected required list %+v", schema["required"])
	}
	if schema["title"] != "KmapPayload" {
		t.Fatalf("unexpected title %v", schema["title"])
	}
}

func TestGenerateDescribesExtraOptions(t *testing.T) {
	schema := generate(t, WithTitle("Assignment"), WithExtraOptions(map[string]any{
		"theme":   "dark",
		"columns": []int{1, 2},
		"size":    "ignored",
	}))
	properties := schema["properties"].(map[string]any)

	if got := properties["theme"]; !reflect.DeepEqual(map[string]any{"type": "string"}, got) {
		t.Fatalf("unexpected theme schema %+v", got)
	}
	columns := properties["columns"].(map[string]any)
	if columns["type"] != "array" {
		t.Fatalf("unexpected columns schema %+v", columns)
	}
	if properties["size"].(map[string]any)["type"] != "integer" {
		t.Fatalf("extra options must not replace recognized keys")
	}
	if schema["title"] != "Assignment" {
		t.Fatalf("unexpected title %v", schema["title"])
	}
}

func TestOptionWiresGeneratorIntoKmap(t *testing.T) {
	doc, err := kmap.New(Option()).Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if doc.Format != kmap.SchemaFormatOpenAPI {
		t.Fatalf("expected openapi format, got %q", doc.Format)
	}
	if _, err := json.Marshal(doc.Document); err != nil {
		t.Fatalf("document must be JSON serialisable: %v", err)
	}
}
