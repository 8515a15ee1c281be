package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile loads a mapping file. Files ending in .json are read as JSON,
// everything else as YAML.
func LoadFile(path string) (*Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	if isJSON(path) {
		return ParseJSON(data)
	}

	return Parse(data)
}

// Parse parses YAML data into a Connection.
func Parse(data []byte) (*Connection, error) {
	var conn Connection

	if err := yaml.Unmarshal(data, &conn); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&conn)

	return &conn, nil
}

// ParseJSON parses JSON data into a Connection.
func ParseJSON(data []byte) (*Connection, error) {
	var conn Connection

	if err := json.Unmarshal(data, &conn); err != nil {
		return nil, fmt.Errorf("failed to parse mapping JSON: %w", err)
	}

	applyDefaults(&conn)

	return &conn, nil
}

// applyDefaults fills in EXACT for entries that omit the type.
func applyDefaults(conn *Connection) {
	for id, mm := range conn.All() {
		if mm.Type == "" {
			mm.Type = TypeExact
			conn.Set(id, mm)
		}
	}
}

// Marshal serializes a Connection to YAML.
func Marshal(conn *Connection) ([]byte, error) {
	return yaml.Marshal(conn)
}

// MarshalJSON serializes a Connection to indented JSON.
func MarshalJSON(conn *Connection) ([]byte, error) {
	return json.MarshalIndent(conn, "", "  ")
}

// WriteFile writes a Connection to path, as JSON when the path ends in .json.
func WriteFile(conn *Connection, path string) error {
	marshal := Marshal
	if isJSON(path) {
		marshal = MarshalJSON
	}

	data, err := marshal(conn)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
