package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kmap "github.com/goliatone/go-kmap"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// loadPreset reads a preset file and decodes it into typed settings. The
// format is chosen from the file extension.
func loadPreset(path string) (kmap.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kmap.Settings{}, fmt.Errorf("read preset %s: %w", path, err)
	}

	format, err := presetFormat(path)
	if err != nil {
		return kmap.Settings{}, err
	}

	raw := map[string]any{}
	switch format {
	case "json":
		err = json.Unmarshal(data, &raw)
	case "yaml":
		err = yaml.Unmarshal(data, &raw)
	case "toml":
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return kmap.Settings{}, fmt.Errorf("parse %s preset %s: %w", format, path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return kmap.LoadSettings(path, format, raw)
}

func presetFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("preset %s: unsupported extension %q", path, filepath.Ext(path))
	}
}

// textProperties are the properties documented as strings; their --set
// values are never decoded, so appTag=2024 stays "2024".
var textProperties = func() map[string]bool {
	names := map[string]bool{}
	for _, p := range kmap.Properties() {
		if !p.Type.IsString() {
			continue
		}
		names[p.Name] = true
		for _, alias := range p.Aliases {
			names[alias] = true
		}
	}
	return names
}()

// parseAssignment splits key=value. Values for text properties are kept as
// written. Other values are decoded as JSON when valid and kept as a string
// otherwise, so size=4 yields a number and theme=dark a string.
func parseAssignment(arg string, text map[string]bool) (string, any, error) {
	key, value, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("expected key=value, got %q", arg)
	}
	if text[key] {
		return key, value, nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err == nil {
		return key, decoded, nil
	}
	return key, value, nil
}
