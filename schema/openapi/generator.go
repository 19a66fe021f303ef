// Package openapi describes the kmap client payload as an OpenAPI 3.0
// component schema.
package openapi

import (
	"fmt"
	"reflect"
	"sort"

	kmap "github.com/goliatone/go-kmap"
)

// GeneratorOption configures the OpenAPI generator.
type GeneratorOption func(*generator)

// WithTitle sets the schema title.
func WithTitle(title string) GeneratorOption {
	return func(g *generator) {
		g.title = title
	}
}

// WithExtraOptions describes passthrough options by inspecting the values
// they will carry.
func WithExtraOptions(options map[string]any) GeneratorOption {
	return func(g *generator) {
		g.extras = options
	}
}

type generator struct {
	title  string
	extras map[string]any
}

// NewGenerator constructs an OpenAPI-compatible schema generator.
func NewGenerator(opts ...GeneratorOption) kmap.SchemaGenerator {
	g := generator{title: "KmapPayload"}
	for _, opt := range opts {
		if opt != nil {
			opt(&g)
		}
	}
	return g
}

// Option returns a kmap.Option that wires the OpenAPI generator into a Kmap.
func Option(opts ...GeneratorOption) kmap.Option {
	return kmap.WithSchemaGenerator(NewGenerator(opts...))
}

func (g generator) Generate(properties []kmap.PropertyDescriptor) (kmap.SchemaDocument, error) {
	fields := make(map[string]any, len(properties)+1)
	for _, p := range properties {
		if p.PayloadKey == "" {
			continue
		}
		schema, err := schemaForProperty(p)
		if err != nil {
			return kmap.SchemaDocument{}, err
		}
		fields[p.PayloadKey] = schema
	}
	fields[kmap.PayloadKeyTestAPI] = map[string]any{"type": "string"}

	names := make([]string, 0, len(g.extras))
	for name := range g.extras {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, taken := fields[name]; taken {
			continue
		}
		fields[name] = buildSchema(reflect.ValueOf(g.extras[name]))
	}

	document := map[string]any{
		"type":                 "object",
		"properties":           fields,
		"required":             []string{kmap.PropertySize},
		"additionalProperties": true,
	}
	if g.title != "" {
		document["title"] = g.title
	}
	return kmap.SchemaDocument{
		Format:   kmap.SchemaFormatOpenAPI,
		Document: document,
	}, nil
}

func schemaForProperty(p kmap.PropertyDescriptor) (map[string]any, error) {
	var schema map[string]any
	switch p.Type {
	case kmap.TypeInteger:
		schema = map[string]any{"type": "integer"}
	case kmap.TypeBoolean:
		schema = map[string]any{"type": "boolean"}
	case kmap.TypeString:
		schema = map[string]any{"type": "string"}
	case kmap.TypeOptionalString:
		schema = map[string]any{"type": "string", "nullable": true}
	case kmap.TypeIntegerList:
		schema = map[string]any{"type": "array", "items": map[string]any{"type": "integer"}}
	case kmap.TypeOptionalStringList:
		schema = map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "nullable": true}
	default:
		return nil, fmt.Errorf("openapi: property %q has unsupported type %q", p.Name, p.Type)
	}
	if p.Default != nil {
		schema["default"] = p.Default
	}
	return schema, nil
}

func buildSchema(rv reflect.Value) map[string]any {
	if !rv.IsValid() {
		return map[string]any{"nullable": true}
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return map[string]any{"nullable": true}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Slice, reflect.Array:
		items := map[string]any{}
		if rv.Len() > 0 {
			items = buildSchema(rv.Index(0))
		}
		return map[string]any{"type": "array", "items": items}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return map[string]any{"type": "object"}
		}
		properties := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			properties[iter.Key().String()] = buildSchema(iter.Value())
		}
		return map[string]any{"type": "object", "properties": properties}
	default:
		return map[string]any{"type": "string", "format": "go:" + rv.Type().String()}
	}
}
