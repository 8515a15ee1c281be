package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const listSuffix = "[]"

// TypeReference refers either to a primitive type (Type) or to a named
// entity (Ref), optionally as a list. The zero value means void.
type TypeReference struct {
	Type string
	Ref  string
	List bool
}

// Primitive returns a reference to a built-in type.
func Primitive(name string) TypeReference {
	return TypeReference{Type: name}
}

// EntityRef returns a reference to the named entity.
func EntityRef(name string) TypeReference {
	return TypeReference{Ref: name}
}

// ListOf returns a list of t.
func ListOf(t TypeReference) TypeReference {
	t.List = true
	return t
}

// ParseTypeReference parses the short form used in documents and the DSL:
// "string", "Task", "Task[]".
func ParseTypeReference(s string) TypeReference {
	name, list := splitList(strings.TrimSpace(s))

	switch {
	case name == "":
		return TypeReference{}
	case IsBuiltin(name):
		return TypeReference{Type: name, List: list}
	default:
		return TypeReference{Ref: name, List: list}
	}
}

// IsEntity reports whether t refers to a named entity.
func (t TypeReference) IsEntity() bool {
	return t.Ref != ""
}

// IsVoid reports whether t is void or empty.
func (t TypeReference) IsVoid() bool {
	return t.Ref == "" && (t.Type == "" || t.Type == TypeVoid) && !t.List
}

// Name returns the referenced entity or primitive name without list marker.
func (t TypeReference) Name() string {
	if t.Ref != "" {
		return t.Ref
	}

	if t.Type == "" {
		return TypeVoid
	}

	return t.Type
}

// String returns the short form, e.g. "Task[]".
func (t TypeReference) String() string {
	if t.List {
		return t.Name() + listSuffix
	}

	return t.Name()
}

// ResponseOf returns the referenced type, or void for nil.
func ResponseOf(t *TypeReference) TypeReference {
	if t == nil {
		return Primitive(TypeVoid)
	}

	return *t
}

func splitList(s string) (string, bool) {
	if strings.HasSuffix(s, listSuffix) {
		return strings.TrimSuffix(s, listSuffix), true
	}

	return s, false
}

// typeWire is the document shape: {type: "string"} or {ref: "Task[]"}.
type typeWire struct {
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	Ref  string `yaml:"ref,omitempty" json:"ref,omitempty"`
}

func (w typeWire) resolve() TypeReference {
	if w.Ref != "" {
		name, list := splitList(w.Ref)
		return TypeReference{Ref: name, List: list}
	}

	return ParseTypeReference(w.Type)
}

func (t TypeReference) wire() typeWire {
	if t.Ref != "" {
		return typeWire{Ref: t.String()}
	}

	if t.Type == "" && !t.List {
		return typeWire{}
	}

	return typeWire{Type: t.String()}
}

// UnmarshalYAML accepts either the scalar short form or the {type|ref} mapping.
func (t *TypeReference) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		*t = ParseTypeReference(s)

		return nil

	case yaml.MappingNode:
		var w typeWire
		if err := node.Decode(&w); err != nil {
			return err
		}

		*t = w.resolve()

		return nil

	default:
		return fmt.Errorf("expected type name or {type|ref} mapping, got %v", node.Kind)
	}
}

// MarshalYAML writes the {type|ref} mapping.
func (t TypeReference) MarshalYAML() (any, error) {
	return t.wire(), nil
}

// UnmarshalJSON accepts either a string or a {type|ref} object.
func (t *TypeReference) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ParseTypeReference(s)
		return nil
	}

	var w typeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*t = w.resolve()

	return nil
}

// MarshalJSON writes the {type|ref} object.
func (t TypeReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.wire())
}
