package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/exportsync/pkg/exports"
)

// entryPath is where the build entry lives inside a configuration document.
var entryPath = []string{"build", "lib", "entry"}

// EntryDeclaration extracts build.lib.entry from a configuration file. When
// modes.<mode>.build.lib.entry is present it replaces the base value.
// Mapping order is kept for YAML and JSON; TOML tables are read in sorted
// key order.
func EntryDeclaration(file string, data []byte, mode string) (exports.Declaration, error) {
	if isTOML(file) {
		return tomlEntry(data, mode)
	}
	return yamlEntry(data, mode)
}

func isTOML(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".toml")
}

func yamlEntry(data []byte, mode string) (exports.Declaration, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return exports.Declaration{}, fmt.Errorf("parse config: %w", err)
	}
	if len(doc.Content) == 0 {
		return exports.Declaration{}, nil
	}
	root := doc.Content[0]

	node := lookupNode(root, append([]string{"modes", mode}, entryPath...)...)
	if node == nil {
		node = lookupNode(root, entryPath...)
	}
	if node == nil {
		return exports.Declaration{}, nil
	}
	return declarationFromNode(node)
}

func lookupNode(n *yaml.Node, keys ...string) *yaml.Node {
	for _, key := range keys {
		if n == nil || n.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == key {
				next = n.Content[i+1]
				break
			}
		}
		n = next
	}
	return n
}

func declarationFromNode(n *yaml.Node) (exports.Declaration, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" || strings.TrimSpace(n.Value) == "" {
			return exports.Declaration{}, nil
		}
		return exports.SingleEntry(n.Value), nil
	case yaml.SequenceNode:
		var paths []string
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return exports.Declaration{}, fmt.Errorf("build.lib.entry: list items must be paths (line %d)", item.Line)
			}
			paths = append(paths, item.Value)
		}
		if len(paths) == 0 {
			return exports.Declaration{}, nil
		}
		return exports.EntryList(paths...), nil
	case yaml.MappingNode:
		var named []exports.NamedEntry
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return exports.Declaration{}, fmt.Errorf("build.lib.entry.%s: expected a path (line %d)", k.Value, v.Line)
			}
			named = append(named, exports.NamedEntry{Name: k.Value, Path: v.Value})
		}
		if len(named) == 0 {
			return exports.Declaration{}, nil
		}
		return exports.NamedEntries(named...), nil
	case yaml.AliasNode:
		if n.Alias != nil {
			return declarationFromNode(n.Alias)
		}
	}
	return exports.Declaration{}, fmt.Errorf("build.lib.entry: unsupported value")
}

func tomlEntry(data []byte, mode string) (exports.Declaration, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return exports.Declaration{}, fmt.Errorf("parse config: %w", err)
	}
	raw, ok := lookupValue(doc, append([]string{"modes", mode}, entryPath...)...)
	if !ok {
		raw, ok = lookupValue(doc, entryPath...)
	}
	if !ok {
		return exports.Declaration{}, nil
	}
	return declarationFromValue(raw)
}

func lookupValue(m map[string]interface{}, keys ...string) (interface{}, bool) {
	var cur interface{} = m
	for _, key := range keys {
		table, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = table[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func declarationFromValue(raw interface{}) (exports.Declaration, error) {
	switch val := raw.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return exports.Declaration{}, nil
		}
		return exports.SingleEntry(val), nil
	case []interface{}:
		paths, err := stringList(val)
		if err != nil {
			return exports.Declaration{}, fmt.Errorf("build.lib.entry: %w", err)
		}
		if len(paths) == 0 {
			return exports.Declaration{}, nil
		}
		return exports.EntryList(paths...), nil
	case map[string]interface{}:
		names := make([]string, 0, len(val))
		for k := range val {
			names = append(names, k)
		}
		sort.Strings(names)
		named := make([]exports.NamedEntry, 0, len(names))
		for _, name := range names {
			p, ok := val[name].(string)
			if !ok {
				return exports.Declaration{}, fmt.Errorf("build.lib.entry.%s: expected a path", name)
			}
			named = append(named, exports.NamedEntry{Name: name, Path: p})
		}
		if len(named) == 0 {
			return exports.Declaration{}, nil
		}
		return exports.NamedEntries(named...), nil
	default:
		return exports.Declaration{}, fmt.Errorf("build.lib.entry: unsupported value of type %T", raw)
	}
}
