package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"rest-mapper/internal/common"
)

// EntityKind distinguishes record types from enums.
type EntityKind string

const (
	EntityDTO  EntityKind = "DTO"
	EntityEnum EntityKind = "ENUM"
)

// Entity is a named structural type: a record of named properties or an enum.
type Entity struct {
	Name        string                     `yaml:"name" json:"name" validate:"required"`
	Type        EntityKind                 `yaml:"type" json:"type" validate:"required,oneof=DTO ENUM"`
	Description string                     `yaml:"description,omitempty" json:"description,omitempty"`
	Properties  common.OrderedMap[Property] `yaml:"properties,omitempty" json:"properties,omitzero"`
	Values      []string                   `yaml:"values,omitempty" json:"values,omitempty"`
}

// Property is a named member of a DTO entity.
type Property struct {
	Type        TypeReference
	Description string
}

// Clone returns a copy that does not share its property table with e.
func (e Entity) Clone() Entity {
	out := e
	out.Properties = e.Properties.Clone()
	out.Values = append([]string(nil), e.Values...)

	return out
}

// IsEnum reports whether e is an enum.
func (e Entity) IsEnum() bool {
	return e.Type == EntityEnum
}

type propertyWire struct {
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Ref         string `yaml:"ref,omitempty" json:"ref,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

func (p Property) wire() propertyWire {
	tw := p.Type.wire()
	return propertyWire{Type: tw.Type, Ref: tw.Ref, Description: p.Description}
}

func (w propertyWire) resolve() Property {
	return Property{
		Type:        typeWire{Type: w.Type, Ref: w.Ref}.resolve(),
		Description: w.Description,
	}
}

// UnmarshalYAML accepts the scalar short form ("string", "Task[]") or a mapping.
func (p *Property) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		*p = Property{Type: ParseTypeReference(s)}

		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected property mapping, got %v", node.Kind)
	}

	var w propertyWire
	if err := node.Decode(&w); err != nil {
		return err
	}

	*p = w.resolve()

	return nil
}

// MarshalYAML writes the property mapping.
func (p Property) MarshalYAML() (any, error) {
	return p.wire(), nil
}

// UnmarshalJSON accepts a string or an object.
func (p *Property) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Property{Type: ParseTypeReference(s)}
		return nil
	}

	var w propertyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = w.resolve()

	return nil
}

// MarshalJSON writes the property object.
func (p Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// EntitySet is the flat, name-keyed universe of entities of one side.
// Order is preserved; the first entity with a given name wins on lookup.
type EntitySet []Entity

// Get returns the entity with the given name.
func (s EntitySet) Get(name string) (Entity, bool) {
	for i := range s {
		if s[i].Name == name {
			return s[i], true
		}
	}

	return Entity{}, false
}

// Has reports whether an entity with the given name exists.
func (s EntitySet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns entity names in order.
func (s EntitySet) Names() []string {
	out := make([]string, 0, len(s))
	for i := range s {
		out = append(out, s[i].Name)
	}

	return out
}

// Union returns a new set holding s followed by every entity of extra whose
// name is not already present. s is not modified.
func (s EntitySet) Union(extra ...Entity) EntitySet {
	out := make(EntitySet, len(s), len(s)+len(extra))
	copy(out, s)

	for _, e := range extra {
		if out.Has(e.Name) {
			continue
		}

		out = append(out, e)
	}

	return out
}

// Clone returns a deep copy of s.
func (s EntitySet) Clone() EntitySet {
	if s == nil {
		return nil
	}

	out := make(EntitySet, 0, len(s))
	for i := range s {
		out = append(out, s[i].Clone())
	}

	return out
}
