package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/exportsync/internal/assets"
)

// SchemaVersion is the configuration schema version this build validates
// against.
const SchemaVersion = "1.0.0"

// ValidationError lists schema violations of a configuration document.
type ValidationError struct {
	File     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed for %s:\n%s", e.File, strings.Join(e.Problems, "\n"))
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate reads a configuration file and checks it against the schema.
func Validate(file string) error {
	data, err := os.ReadFile(file) // #nosec G304 -- user-selected configuration file
	if err != nil {
		return fmt.Errorf("read config %s: %w", file, err)
	}
	return ValidateFile(file, data)
}

// ValidateFile checks data, in the format implied by file's extension,
// against the embedded configuration schema.
func ValidateFile(file string, data []byte) error {
	doc, err := documentJSON(file, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, file, err)
	}
	problems, err := ValidateDocument(doc)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return &ValidationError{File: file, Problems: problems}
	}
	return nil
}

// ValidateDocument validates a JSON document and returns one line per
// violation.
func ValidateDocument(doc []byte) ([]string, error) {
	schema, err := assets.GetSchemaJSON(assets.ConfigSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema for version %s: %w", SchemaVersion, err)
	}
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}

// documentJSON converts a YAML, JSON or TOML configuration into JSON. An
// empty file is an empty object.
func documentJSON(file string, data []byte) ([]byte, error) {
	var doc interface{}
	if isTOML(file) {
		var m map[string]interface{}
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		doc = m
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return json.Marshal(doc)
}
