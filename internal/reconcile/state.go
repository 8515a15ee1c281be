package reconcile

import (
	"rest-mapper/internal/common"
	"rest-mapper/internal/diagnostic"
	"rest-mapper/internal/mapping"
	"rest-mapper/internal/match"
	"rest-mapper/internal/plan"
	"rest-mapper/internal/resource"
	"rest-mapper/internal/schema"
)

// Side is one end of a connection: a resource and the entities its methods use.
type Side struct {
	Resource *resource.Resource
	Entities schema.EntitySet
}

// Entry is one mapping row. It holds a mapped pair, a source waiting for a
// target, a target waiting for a source, or transiently both sides unmatched.
type Entry struct {
	Source Method
	Target Method
	Mapped bool
}

// HasSource reports whether the entry has a source method.
func (e Entry) HasSource() bool { return e.Source != nil }

// HasTarget reports whether the entry has a target method.
func (e Entry) HasTarget() bool { return e.Target != nil }

// SourceID returns the source method id, or an empty string.
func (e Entry) SourceID() string {
	if e.Source == nil {
		return ""
	}

	return e.Source.ID()
}

// TargetID returns the target method id, or an empty string.
func (e Entry) TargetID() string {
	if e.Target == nil {
		return ""
	}

	return e.Target.ID()
}

// Context is the build result beside the entries. Errors in Diagnostics are
// blocking issues; warnings report drift that was healed.
type Context struct {
	SourceName     string
	TargetName     string
	Diagnostics    diagnostic.Diagnostics
	ClientWasEmpty bool
	ServerWasEmpty bool
}

// Issues returns the blocking issue messages.
func (c Context) Issues() []string {
	return diagnostic.Messages(c.Diagnostics.Errors)
}

// Warnings returns the warning messages.
func (c Context) Warnings() []string {
	return diagnostic.Messages(c.Diagnostics.Warnings)
}

// snapshot is the State's view of one side. It is replaced, never mutated,
// once a State has been handed out.
type snapshot struct {
	name     string
	methods  common.OrderedMap[schema.EditableMethod]
	entities schema.EntitySet
}

func newSnapshot(side Side) snapshot {
	s := snapshot{
		name:     side.Resource.Name(),
		entities: side.Entities.Clone(),
	}

	for _, m := range side.Resource.EditableMethods() {
		s.methods.Set(m.ID, m)
	}

	return s
}

func (s snapshot) clone() snapshot {
	return snapshot{
		name:     s.name,
		methods:  s.methods.Clone(),
		entities: s.entities.Clone(),
	}
}

func (s snapshot) list() []schema.EditableMethod {
	out := make([]schema.EditableMethod, 0, s.methods.Len())
	for _, m := range s.methods.All() {
		out = append(out, m.Clone())
	}

	return out
}

func (s snapshot) ids() map[string]struct{} {
	out := make(map[string]struct{}, s.methods.Len())
	for id := range s.methods.All() {
		out[id] = struct{}{}
	}

	return out
}

func (s snapshot) universe() plan.Universe {
	return plan.Universe{Name: s.name, Methods: s.list(), Entities: s.entities}
}

// State is an immutable mapping session state.
type State struct {
	entries []Entry
	source  snapshot
	target  snapshot
	ctx     Context
	planner *plan.Planner
}

// Entries returns a copy of the mapping rows.
func (s *State) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Len returns the number of entries.
func (s *State) Len() int {
	return len(s.entries)
}

// Entry returns the entry at ix.
func (s *State) Entry(ix int) (Entry, bool) {
	if ix < 0 || ix >= len(s.entries) {
		return Entry{}, false
	}

	return s.entries[ix], true
}

// Context returns the build context.
func (s *State) Context() Context {
	ctx := s.ctx
	ctx.Diagnostics = s.ctx.Diagnostics.Clone()

	return ctx
}

// SourceMethods returns the source side methods in table order.
func (s *State) SourceMethods() []schema.EditableMethod { return s.source.list() }

// TargetMethods returns the target side methods in table order.
func (s *State) TargetMethods() []schema.EditableMethod { return s.target.list() }

// SourceEntities returns the source side entities.
func (s *State) SourceEntities() schema.EntitySet { return s.source.entities.Clone() }

// TargetEntities returns the target side entities.
func (s *State) TargetEntities() schema.EntitySet { return s.target.entities.Clone() }

// IsValid reports whether the mapping is complete: no blocking issues, at
// least one entry, and every entry with a target is mapped.
func (s *State) IsValid() bool {
	if s.ctx.Diagnostics.HasErrors() || len(s.entries) == 0 {
		return false
	}

	for _, e := range s.entries {
		if e.HasTarget() && !e.Mapped {
			return false
		}
	}

	return true
}

// MappingData returns the persisted form of the mapped pairs, in entry order.
func (s *State) MappingData() *mapping.Connection {
	conn := &mapping.Connection{}

	for _, e := range s.entries {
		if e.Mapped && e.HasSource() && e.HasTarget() {
			conn.Set(e.SourceID(), mapping.Exact(e.TargetID()))
		}
	}

	return conn
}

// Candidates ranks the source methods not yet mapped elsewhere against the
// target of entry ix. It returns nil when the entry has no target.
func (s *State) Candidates(ix int) match.CandidateList {
	e, ok := s.Entry(ix)
	if !ok || !e.HasTarget() {
		return nil
	}

	var taken common.Set

	for i, other := range s.entries {
		if i != ix && other.Mapped && other.HasSource() {
			taken.Add(other.SourceID())
		}
	}

	var sources []schema.EditableMethod

	for id, m := range s.source.methods.All() {
		if !taken.Has(id) {
			sources = append(sources, m)
		}
	}

	return s.planner.Checker().RankCandidates(e.Target.Editable(), s.target.entities, sources, s.source.entities)
}

// Validate reports, as warnings, mapped pairs whose argument transports
// differ by position.
func (s *State) Validate() *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	for _, e := range s.entries {
		if !e.Mapped || !e.HasSource() || !e.HasTarget() {
			continue
		}

		subject := e.SourceID() + " -> " + e.TargetID()
		for _, diff := range match.TransportDifferences(e.Source.Editable(), e.Target.Editable()) {
			res.AddWarning(diagnostic.CodeTransportMismatch, diff, subject)
		}
	}

	return res
}

// with returns a shallow copy of s carrying entries. Snapshots are shared
// until an effect replaces them.
func (s *State) with(entries []Entry) *State {
	next := *s
	next.entries = entries

	return &next
}

// apply folds effects into the snapshots of s, which must be a fresh copy.
func (s *State) apply(effects []Effect) {
	cloned := map[Role]bool{}

	side := func(r Role) *snapshot {
		snap := &s.source
		if r == RoleTarget {
			snap = &s.target
		}

		if !cloned[r] {
			*snap = snap.clone()
			cloned[r] = true
		}

		return snap
	}

	for _, eff := range effects {
		switch e := eff.(type) {
		case SetMethod:
			side(e.Role).methods.Set(e.ID, schema.ToEditable(e.ID, e.Method))
		case DeleteMethod:
			side(e.Role).methods.Delete(e.ID)
		case AddEntities:
			snap := side(e.Role)
			snap.entities = snap.entities.Union(e.Entities...)
		case MappingChanged:
		}
	}
}
