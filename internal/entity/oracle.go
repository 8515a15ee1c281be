package entity

import (
	"fmt"
	"slices"

	"rest-mapper/internal/schema"
)

// Oracle judges whether two entities, each resolved in its own universe, are
// structurally interchangeable.
type Oracle interface {
	// StructuralIssues returns the reasons a and b differ. An empty result means compatible.
	StructuralIssues(a, b schema.Entity, aSet, bSet schema.EntitySet) []string
	// IsStructurallyCompatible reports whether entity matches against.
	IsStructurallyCompatible(entity, against schema.Entity, selfSet, otherSet schema.EntitySet) bool
}

// StructuralOracle compares entities by name, kind, enum values and
// properties, following nested entity references into each universe.
// Self- and mutually-recursive entity graphs are handled by remembering the
// entity pairs already under comparison.
type StructuralOracle struct{}

// NewStructuralOracle returns the default Oracle.
func NewStructuralOracle() StructuralOracle {
	return StructuralOracle{}
}

// StructuralIssues implements Oracle.
func (StructuralOracle) StructuralIssues(a, b schema.Entity, aSet, bSet schema.EntitySet) []string {
	c := &comparison{
		aSet:    aSet,
		bSet:    bSet,
		visited: make(map[string]struct{}),
	}

	c.entities(a, b)

	return c.issues
}

// IsStructurallyCompatible implements Oracle.
func (o StructuralOracle) IsStructurallyCompatible(entity, against schema.Entity, selfSet, otherSet schema.EntitySet) bool {
	return len(o.StructuralIssues(entity, against, selfSet, otherSet)) == 0
}

type comparison struct {
	aSet, bSet schema.EntitySet
	visited    map[string]struct{}
	issues     []string
}

func (c *comparison) add(format string, args ...any) {
	c.issues = append(c.issues, fmt.Sprintf(format, args...))
}

func (c *comparison) entities(a, b schema.Entity) {
	key := a.Name + "\x00" + b.Name
	if _, seen := c.visited[key]; seen {
		return
	}

	c.visited[key] = struct{}{}

	if a.Name != b.Name {
		c.add("entity %s does not match entity %s", a.Name, b.Name)
		return
	}

	if a.Type != b.Type {
		c.add("%s is a %s on one side and a %s on the other", a.Name, a.Type, b.Type)
		return
	}

	if a.IsEnum() {
		c.enumValues(a, b)
		return
	}

	c.properties(a, b)
}

func (c *comparison) enumValues(a, b schema.Entity) {
	for _, v := range a.Values {
		if !slices.Contains(b.Values, v) {
			c.add("%s: enum value %s is missing on the other side", a.Name, v)
		}
	}

	for _, v := range b.Values {
		if !slices.Contains(a.Values, v) {
			c.add("%s: enum value %s is missing on this side", a.Name, v)
		}
	}
}

func (c *comparison) properties(a, b schema.Entity) {
	for name, pa := range a.Properties.All() {
		pb, ok := b.Properties.Get(name)
		if !ok {
			c.add("%s.%s is missing on the other side", a.Name, name)
			continue
		}

		c.types(a.Name+"."+name, pa.Type, pb.Type)
	}

	for name := range b.Properties.All() {
		if !a.Properties.Has(name) {
			c.add("%s.%s is missing on this side", a.Name, name)
		}
	}
}

func (c *comparison) types(path string, ta, tb schema.TypeReference) {
	if ta.IsEntity() != tb.IsEntity() || ta.List != tb.List {
		c.add("%s: %s is not compatible with %s", path, ta, tb)
		return
	}

	if !ta.IsEntity() {
		if ta.String() != tb.String() {
			c.add("%s: %s is not compatible with %s", path, ta, tb)
		}

		return
	}

	if ta.Ref != tb.Ref {
		c.add("%s: %s is not compatible with %s", path, ta, tb)
		return
	}

	ea, okA := c.aSet.Get(ta.Ref)
	eb, okB := c.bSet.Get(tb.Ref)

	switch {
	case !okA && !okB:
		c.add("%s: entity %s is not defined on either side", path, ta.Ref)
	case !okA:
		c.add("%s: entity %s is not defined on this side", path, ta.Ref)
	case !okB:
		c.add("%s: entity %s is not defined on the other side", path, tb.Ref)
	default:
		c.entities(ea, eb)
	}
}
