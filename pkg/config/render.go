package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// View is the effective configuration as printed by `config show`.
type View struct {
	File                 string    `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
	Mode                 string    `json:"mode" yaml:"mode" toml:"mode"`
	DistDir              string    `json:"dist_dir" yaml:"dist_dir" toml:"dist_dir"`
	EntryPointExtensions []string  `json:"entry_point_extensions" yaml:"entry_point_extensions" toml:"entry_point_extensions"`
	HandleTypes          bool      `json:"handle_types" yaml:"handle_types" toml:"handle_types"`
	EnabledDevelopment   bool      `json:"enabled_development" yaml:"enabled_development" toml:"enabled_development"`
	CSS                  CSSView   `json:"css" yaml:"css" toml:"css"`
	Entry                EntryView `json:"entry" yaml:"entry" toml:"entry"`
}

type CSSView struct {
	Enabled    bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Alias      string   `json:"alias,omitempty" yaml:"alias,omitempty" toml:"alias,omitempty"`
	Extensions []string `json:"extensions" yaml:"extensions" toml:"extensions"`
}

type EntryView struct {
	Kind  string      `json:"kind" yaml:"kind" toml:"kind"`
	Paths []string    `json:"paths,omitempty" yaml:"paths,omitempty" toml:"paths,omitempty"`
	Named []NamedView `json:"named,omitempty" yaml:"named,omitempty" toml:"named,omitempty"`
}

type NamedView struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Path string `json:"path" yaml:"path" toml:"path"`
}

// View returns the printable form of c.
func (c *Config) View() View {
	v := View{
		File:                 c.File,
		Mode:                 c.Mode,
		DistDir:              c.DistDir,
		EntryPointExtensions: c.EntryPointExtensions,
		HandleTypes:          c.HandleTypes,
		EnabledDevelopment:   c.EnabledDevelopment,
		CSS: CSSView{
			Enabled:    c.CSS.Enabled,
			Extensions: c.CSS.Extensions,
		},
		Entry: EntryView{Kind: c.Entry.Kind.String(), Paths: c.Entry.Paths},
	}
	if c.CSS.AliasEnabled {
		v.CSS.Alias = c.CSS.Alias
	}
	for _, n := range c.Entry.Named {
		v.Entry.Named = append(v.Entry.Named, NamedView{Name: n.Name, Path: n.Path})
	}
	return v
}

// Render encodes the effective configuration as yaml, json or toml.
func (c *Config) Render(format string) ([]byte, error) {
	view := c.View()
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		out, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "toml":
		return toml.Marshal(view)
	default:
		return nil, fmt.Errorf("unsupported format %q (use yaml, json or toml)", format)
	}
}
