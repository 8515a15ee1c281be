package resource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rest-mapper/internal/schema"
)

// Document is a resource definition file: the resource itself plus the
// entities its methods refer to.
type Document struct {
	Resource `yaml:",inline"`

	Entities schema.EntitySet `yaml:"entities,omitempty" json:"entities,omitempty"`
}

// LoadFile loads a resource document. Files ending in .json are read as
// JSON, everything else as YAML.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource file %s: %w", path, err)
	}

	if isJSON(path) {
		return ParseJSON(data)
	}

	return Parse(data)
}

// Parse parses YAML data into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resource YAML: %w", err)
	}

	applyDefaults(&doc)

	return &doc, nil
}

// ParseJSON parses JSON data into a Document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resource JSON: %w", err)
	}

	applyDefaults(&doc)

	return &doc, nil
}

// applyDefaults derives spec.source when the document does not carry it.
func applyDefaults(doc *Document) {
	if doc.Spec.Source == nil && doc.Spec.Methods.Len() > 0 {
		doc.RegenerateSource()
	}
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// MarshalJSON serializes a Document to indented JSON.
func MarshalJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// WriteFile writes a Document to path, as JSON when the path ends in .json.
func WriteFile(doc *Document, path string) error {
	marshal := Marshal
	if isJSON(path) {
		marshal = MarshalJSON
	}

	data, err := marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal resource: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write resource file %s: %w", path, err)
	}

	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
