package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colorder/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Loader merges a user config file over the defaults. The zero value uses
// the embedded defaults.
type Loader struct {
	defaultConfig func() ([]byte, error)
}

// Load merges the file at path (if non-empty) over the embedded defaults.
func Load(path string) (File, error) {
	return Loader{}.Load(path)
}

func (l Loader) defaults() ([]byte, error) {
	if l.defaultConfig != nil {
		return l.defaultConfig()
	}
	if len(embeddedDefaultConfig) == 0 {
		return nil, fmt.Errorf("embedded default config is empty")
	}
	return DefaultConfigYAML(), nil
}

// Load decodes the defaults, then the user file, and merges them. The
// merged layout is validated but not applied.
func (l Loader) Load(path string) (File, error) {
	raw, err := l.defaults()
	if err != nil {
		return File{}, fmt.Errorf("load default config: %w", err)
	}
	cfg, err := Decode(raw, "yaml")
	if err != nil {
		return File{}, fmt.Errorf("decode default config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("read config %s: %w", path, err)
		}
		user, err := Decode(data, FormatForPath(path))
		if err != nil {
			return File{}, fmt.Errorf("decode config %s: %w", path, err)
		}
		cfg = Merge(cfg, user)
	}

	if err := cfg.Layout.Validate(); err != nil {
		return File{}, fmt.Errorf("invalid layout: %w", err)
	}
	return cfg, nil
}

// Decode parses a config document. format is "toml" or anything else for YAML.
func Decode(data []byte, format string) (File, error) {
	var f File
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, err
		}
	}
	return f, nil
}

// Encode renders a config document as YAML or TOML.
func Encode(f File, format string) ([]byte, error) {
	if format == "toml" {
		return toml.Marshal(f)
	}
	return yaml.Marshal(f)
}

// FormatForPath picks the decoder from a file extension.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Merge layers over on top of base. A layout in over replaces the base
// layout wholesale; display fields and hints merge individually.
func Merge(base, over File) File {
	out := base
	if over.App.Name != "" {
		out.App.Name = over.App.Name
	}
	if over.App.Description != "" {
		out.App.Description = over.App.Description
	}
	if over.Layout.Columns != nil {
		out.Layout = over.Layout
	} else if over.Layout.Hidden != nil {
		out.Layout.Hidden = over.Layout.Hidden
	}
	if over.Display.NoColor != nil {
		out.Display.NoColor = over.Display.NoColor
	}
	if over.Display.MaxWidth != nil {
		out.Display.MaxWidth = over.Display.MaxWidth
	}
	if len(over.Display.Hints) > 0 {
		hints := make(map[string]Hint, len(base.Display.Hints)+len(over.Display.Hints))
		for k, v := range base.Display.Hints {
			hints[k] = v
		}
		for k, v := range over.Display.Hints {
			hints[k] = v
		}
		out.Display.Hints = hints
	}
	return out
}

// ResolvePath returns explicit if set, otherwise the first existing file of
// $XDG_CONFIG_HOME/colorder/config.{yaml,toml} or
// ~/.config/colorder/config.{yaml,toml}. It returns "" when none exists.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, settings.CliBinaryName)
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", settings.CliBinaryName)
	}
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.toml"} {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
