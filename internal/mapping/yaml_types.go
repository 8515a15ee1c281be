package mapping

import "rest-mapper/internal/common"

// Type is the kind of a method mapping.
type Type string

const (
	// TypeExact is a 1:1 mapping without field transformation.
	TypeExact Type = "EXACT"
)

// IsSupported reports whether the type is handled when rebuilding a mapping.
func (t Type) IsSupported() bool {
	return t == TypeExact
}

// MethodMapping is the target side of one provider method mapping.
type MethodMapping struct {
	TargetID string `yaml:"targetId" json:"targetId"`
	Type     Type   `yaml:"type" json:"type"`
}

// Exact returns an EXACT mapping onto targetID.
func Exact(targetID string) MethodMapping {
	return MethodMapping{TargetID: targetID, Type: TypeExact}
}

// Connection maps provider method ids to their target mappings, in order.
type Connection = common.OrderedMap[MethodMapping]

// Equal reports whether a and b hold the same mappings in the same order.
// A nil connection equals an empty one.
func Equal(a, b *Connection) bool {
	if a.Len() != b.Len() {
		return false
	}

	keys := b.Keys()
	i := 0

	for k, v := range a.All() {
		if keys[i] != k {
			return false
		}

		if w, _ := b.Get(k); w != v {
			return false
		}

		i++
	}

	return true
}
