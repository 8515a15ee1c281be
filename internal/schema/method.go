package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"rest-mapper/internal/common"
)

// HTTPVerb is the HTTP method of a REST method.
type HTTPVerb string

const (
	GET     HTTPVerb = "GET"
	POST    HTTPVerb = "POST"
	PUT     HTTPVerb = "PUT"
	DELETE  HTTPVerb = "DELETE"
	PATCH   HTTPVerb = "PATCH"
	HEAD    HTTPVerb = "HEAD"
	OPTIONS HTTPVerb = "OPTIONS"
)

// Transport is where an argument value travels in the HTTP request.
type Transport string

const (
	TransportQuery  Transport = "QUERY"
	TransportPath   Transport = "PATH"
	TransportBody   Transport = "BODY"
	TransportHeader Transport = "HEADER"
)

// Method is the persisted form of a REST method, keyed by its id in the
// owning resource's method map.
type Method struct {
	Description  string                     `yaml:"description,omitempty" json:"description,omitempty"`
	Method       HTTPVerb                   `yaml:"method" json:"method" validate:"required,oneof=GET POST PUT DELETE PATCH HEAD OPTIONS"`
	Path         string                     `yaml:"path" json:"path" validate:"required,startswith=/"`
	Arguments    common.OrderedMap[Argument] `yaml:"arguments,omitempty" json:"arguments,omitzero"`
	ResponseType *TypeReference             `yaml:"responseType,omitempty" json:"responseType,omitempty"`
}

// Clone returns a deep copy of m.
func (m Method) Clone() Method {
	out := m
	out.Arguments = m.Arguments.Clone()

	if m.ResponseType != nil {
		rt := *m.ResponseType
		out.ResponseType = &rt
	}

	return out
}

// methodFields drops the codecs of Method so the wire form can embed it.
type methodFields Method

// methodWire is the decoded form of a Method. httpVerb is read as an alias
// of method; method wins when both are set.
type methodWire struct {
	methodFields `yaml:",inline"`

	HTTPVerb HTTPVerb `yaml:"httpVerb,omitempty" json:"httpVerb,omitempty"`
}

func (w methodWire) resolve() Method {
	m := Method(w.methodFields)
	if m.Method == "" {
		m.Method = w.HTTPVerb
	}

	return m
}

// UnmarshalYAML decodes a method, accepting httpVerb for method.
func (m *Method) UnmarshalYAML(node *yaml.Node) error {
	var w methodWire
	if err := node.Decode(&w); err != nil {
		return err
	}

	*m = w.resolve()

	return nil
}

// UnmarshalJSON decodes a method, accepting httpVerb for method.
func (m *Method) UnmarshalJSON(data []byte) error {
	var w methodWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = w.resolve()

	return nil
}

// Argument is one named input of a method.
type Argument struct {
	Transport Transport     `validate:"required,oneof=QUERY PATH BODY HEADER"`
	Type      TypeReference `validate:"-"`
}

type argumentWire struct {
	Type      string    `yaml:"type,omitempty" json:"type,omitempty"`
	Ref       string    `yaml:"ref,omitempty" json:"ref,omitempty"`
	Transport Transport `yaml:"transport" json:"transport"`
}

func (a Argument) wire() argumentWire {
	tw := a.Type.wire()
	return argumentWire{Type: tw.Type, Ref: tw.Ref, Transport: a.Transport}
}

func (w argumentWire) resolve() Argument {
	return Argument{
		Transport: w.Transport,
		Type:      typeWire{Type: w.Type, Ref: w.Ref}.resolve(),
	}
}

// UnmarshalYAML decodes {type|ref, transport}.
func (a *Argument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected argument mapping, got %v", node.Kind)
	}

	var w argumentWire
	if err := node.Decode(&w); err != nil {
		return err
	}

	*a = w.resolve()

	return nil
}

// MarshalYAML encodes {type|ref, transport}.
func (a Argument) MarshalYAML() (any, error) {
	return a.wire(), nil
}

// UnmarshalJSON decodes {type|ref, transport}.
func (a *Argument) UnmarshalJSON(data []byte) error {
	var w argumentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*a = w.resolve()

	return nil
}

// MarshalJSON encodes {type|ref, transport}.
func (a Argument) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.wire())
}
