package kmap

import (
	"errors"
	"sort"

	"github.com/goliatone/go-kmap/internal/hydrate"
)

// Settings is a typed, partial description of a widget configuration as it
// appears in preset files. Nil fields are left untouched by Apply.
type Settings struct {
	Size              *int           `json:"size,omitempty"`
	AppTag            *string        `json:"appTag,omitempty"`
	Name              *string        `json:"name,omitempty"`
	Test              *bool          `json:"test,omitempty"`
	Manual            *bool          `json:"manual,omitempty"`
	Solve             *bool          `json:"solve,omitempty"`
	Solved            *bool          `json:"solved,omitempty"`
	GenDontCareOption *bool          `json:"genDontCareOption,omitempty"`
	Generator         *bool          `json:"generator,omitempty"`
	Fixed             *bool          `json:"fixed,omitempty"`
	Map               *bool          `json:"map,omitempty"`
	Verbose           *bool          `json:"verbose,omitempty"`
	Minterms          []int          `json:"minterms,omitempty"`
	Dontcare          []int          `json:"dontcare,omitempty"`
	GenDontCare       *bool          `json:"genDontCare,omitempty"`
	Labels            []string       `json:"labels,omitempty"`
	ResultSel         *string        `json:"resultSel,omitempty"`
	ExpressionSel     *string        `json:"expressionSel,omitempty"`
	Success           *string        `json:"success,omitempty"`
	Encode            *bool          `json:"encode,omitempty"`
	TestAPI           *string        `json:"testAPI,omitempty"`
	Options           map[string]any `json:"options,omitempty"`
}

// LoadSettings decodes a loosely typed map, typically read from a YAML, TOML
// or JSON preset. Unknown keys are rejected; "dontcares" is accepted as an
// alias of "dontcare".
func LoadSettings(source, format string, payload map[string]any) (Settings, error) {
	decoder := hydrate.NewDecoder(
		hydrate.WithPreHook[Settings](normalizeAliases),
		hydrate.WithDisallowUnknownFields[Settings](),
	)
	return decoder.Decode(hydrate.Context{Source: source, Format: format}, payload)
}

func normalizeAliases(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = value
	}
	for _, p := range propertyTable {
		for _, alias := range p.aliases {
			value, ok := out[alias]
			if !ok {
				continue
			}
			delete(out, alias)
			if _, exists := out[p.name]; !exists {
				out[p.name] = value
			}
		}
	}
	return out, nil
}

// Apply routes every non-nil field through Set, then sets the API endpoint
// and adds options in key order. Failures are joined and returned; fields
// that did apply stay applied.
func (k *Kmap) Apply(s Settings) error {
	var errs []error
	set := func(name string, value any) {
		if result := k.Set(name, value); !result.Applied() {
			errs = append(errs, result.Err())
		}
	}

	if s.Size != nil {
		set(PropertySize, *s.Size)
	}
	if s.AppTag != nil {
		set(PropertyAppTag, *s.AppTag)
	}
	if s.Name != nil {
		set(PropertyName, *s.Name)
	}
	flags := []struct {
		name  string
		value *bool
	}{
		{PropertyTest, s.Test},
		{PropertyManual, s.Manual},
		{PropertySolve, s.Solve},
		{PropertySolved, s.Solved},
		{PropertyGenDontCareOption, s.GenDontCareOption},
		{PropertyGenerator, s.Generator},
		{PropertyFixed, s.Fixed},
		{PropertyMap, s.Map},
		{PropertyVerbose, s.Verbose},
		{PropertyGenDontCare, s.GenDontCare},
		{PropertyEncode, s.Encode},
	}
	for _, flag := range flags {
		if flag.value != nil {
			set(flag.name, *flag.value)
		}
	}
	if s.Minterms != nil {
		set(PropertyMinterms, s.Minterms)
	}
	if s.Dontcare != nil {
		set(PropertyDontcare, s.Dontcare)
	}
	if s.Labels != nil {
		set(PropertyLabels, s.Labels)
	}
	if s.ResultSel != nil {
		set(PropertyResultSel, *s.ResultSel)
	}
	if s.ExpressionSel != nil {
		set(PropertyExpressionSel, *s.ExpressionSel)
	}
	if s.Success != nil {
		set(PropertySuccess, *s.Success)
	}
	if s.TestAPI != nil {
		if result := k.api.Set(PropertyAPITest, *s.TestAPI); !result.Applied() {
			errs = append(errs, result.Err())
		}
	}

	keys := make([]string, 0, len(s.Options))
	for key := range s.Options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		k.Option(key, s.Options[key])
	}

	return errors.Join(errs...)
}
