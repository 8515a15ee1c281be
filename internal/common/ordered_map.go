package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that preserves insertion order.
// The zero value is an empty map ready to use.
//
// Persisted method and mapping tables are plain objects on the wire, but their
// order is user-visible (display order, first-fit auto-mapping), so the codecs
// below keep document order on decode and reproduce it on encode.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// IsZero reports whether the map has no entries. Used by omitempty/omitzero.
func (m OrderedMap[V]) IsZero() bool {
	return len(m.keys) == 0
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}

	return append([]string(nil), m.keys...)
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil || m.values == nil {
		var zero V
		return zero, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key. New keys are appended; existing keys keep their position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = v
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	if m == nil || m.values == nil {
		return false
	}

	if _, ok := m.values[key]; !ok {
		return false
	}

	delete(m.values, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}

	return true
}

// All iterates over entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a copy with its own key order and value table. Values are copied shallowly.
func (m *OrderedMap[V]) Clone() OrderedMap[V] {
	var out OrderedMap[V]
	for k, v := range m.All() {
		out.Set(k, v)
	}

	return out
}

// UnmarshalYAML decodes a YAML mapping, keeping document order.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping, got %v", node.Kind)
	}

	var out OrderedMap[V]

	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}

		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		out.Set(key, v)
	}

	*m = out

	return nil
}

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (m OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range m.keys {
		var value yaml.Node
		if err := value.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	}

	return node, nil
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping document order.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		*m = OrderedMap[V]{}
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	var out OrderedMap[V]

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		out.Set(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out

	return nil
}
