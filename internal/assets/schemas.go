package assets

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaInfo holds schema metadata.
type SchemaInfo struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Draft string `json:"draft"`
}

// GetSchema returns the embedded schema bytes by path relative to
// embedded_schemas (e.g. "config/exportsync-config-v1.0.0.yaml").
func GetSchema(relPath string) ([]byte, bool) {
	data, err := fs.ReadFile(GetSchemasFS(), relPath)
	return data, err == nil
}

// GetSchemaJSON returns a schema converted to JSON. Schemas are authored in
// YAML; the validator only reads JSON.
func GetSchemaJSON(relPath string) ([]byte, error) {
	data, ok := GetSchema(relPath)
	if !ok {
		return nil, fmt.Errorf("schema %s: %w", relPath, fs.ErrNotExist)
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", relPath, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", relPath, err)
	}
	return out, nil
}

// GetSchemaNames returns the registered schemas with their draft.
func GetSchemaNames() []SchemaInfo {
	var infos []SchemaInfo
	for _, a := range Registry {
		if a.Family != "schema" {
			continue
		}
		if _, ok := GetSchema(a.Path); !ok {
			continue
		}
		infos = append(infos, SchemaInfo{
			Name:  a.Name + "-v" + a.Version,
			Path:  a.Path,
			Draft: detectDraft(a.Path),
		})
	}
	return infos
}

// detectDraft heuristically detects draft from schema bytes via $schema key.
func detectDraft(path string) string {
	data, ok := GetSchema(path)
	if !ok {
		return "unknown"
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "unknown"
	}
	if v, ok := doc["$schema"].(string); ok {
		switch {
		case strings.Contains(v, "draft-07"):
			return "draft-07"
		case strings.Contains(v, "2020-12"):
			return "2020-12"
		}
	}
	return "unknown"
}
