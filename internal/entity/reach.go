package entity

import (
	"rest-mapper/internal/common"
	"rest-mapper/internal/schema"
)

// UsedByMethod returns the names of every entity method depends on: its
// response type, its arguments, and everything reachable from those through
// entity properties. Names are listed in first-discovery order. Names that do
// not resolve in set are still listed but not expanded.
func UsedByMethod(m schema.EditableMethod, set schema.EntitySet) []string {
	var found common.Set

	seed(&found, m)
	expand(&found, set)

	return found.Values()
}

// UsedByMethods is the union of UsedByMethod over methods, in method order.
func UsedByMethods(methods []schema.EditableMethod, set schema.EntitySet) []string {
	var found common.Set

	for _, m := range methods {
		for _, name := range UsedByMethod(m, set) {
			found.Add(name)
		}
	}

	return found.Values()
}

func seed(found *common.Set, m schema.EditableMethod) {
	if rt := m.Response(); rt.IsEntity() {
		found.Add(rt.Ref)
	}

	for _, arg := range m.Arguments {
		if arg.Type.IsEntity() {
			found.Add(arg.Type.Ref)
		}
	}
}

// expand walks found breadth-first, appending names reachable through
// properties. The queue is the set itself, so each name is visited once.
func expand(found *common.Set, set schema.EntitySet) {
	for i := 0; i < found.Len(); i++ {
		e, ok := set.Get(found.At(i))
		if !ok {
			continue
		}

		for _, p := range e.Properties.All() {
			if p.Type.IsEntity() {
				found.Add(p.Type.Ref)
			}
		}
	}
}
