package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMap_SetKeepsPosition(t *testing.T) {
	var m OrderedMap[int]

	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, m.Keys())

	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestOrderedMap_Delete(t *testing.T) {
	var m OrderedMap[string]

	m.Set("x", "1")
	m.Set("y", "2")
	m.Set("z", "3")

	clone := m.Clone()

	assert.True(t, m.Delete("y"))
	assert.False(t, m.Delete("y"))
	assert.Equal(t, []string{"x", "z"}, m.Keys())
	assert.Equal(t, 2, m.Len())

	// The clone must not observe the deletion.
	assert.Equal(t, []string{"x", "y", "z"}, clone.Keys())
}

func TestOrderedMap_ZeroValue(t *testing.T) {
	var m *OrderedMap[int]

	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("a"))

	for range m.All() {
		t.Fatal("nil map must not yield")
	}
}

func TestOrderedMap_YAMLKeepsDocumentOrder(t *testing.T) {
	doc := `
zeta: 1
alpha: 2
mid: 3
`

	var m OrderedMap[int]
	require.NoError(t, yaml.Unmarshal([]byte(doc), &m))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "zeta: 1\nalpha: 2\nmid: 3\n", string(out))
}

func TestOrderedMap_YAMLRejectsSequence(t *testing.T) {
	var m OrderedMap[int]
	err := yaml.Unmarshal([]byte("- 1\n- 2\n"), &m)
	assert.Error(t, err)
}

func TestOrderedMap_JSON(t *testing.T) {
	var m OrderedMap[string]
	require.NoError(t, json.Unmarshal([]byte(`{"b":"x","a":"y"}`), &m))
	assert.Equal(t, []string{"b", "a"}, m.Keys())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":"x","a":"y"}`, string(out))
	assert.Equal(t, `{"b":"x","a":"y"}`, string(out))

	var empty OrderedMap[string]
	out, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestOrderedMap_JSONNull(t *testing.T) {
	m := OrderedMap[int]{}
	m.Set("a", 1)

	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, 0, m.Len())
}

func TestSet(t *testing.T) {
	var s Set

	assert.True(t, s.Add("a"))
	assert.True(t, s.Add("b"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Has("b"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b"}, s.Values())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "b", s.At(1))
}
