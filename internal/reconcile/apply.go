package reconcile

import (
	"rest-mapper/internal/common"
	"rest-mapper/internal/schema"
)

// Apply is the state transition for intent. It returns the next state and
// the effects the host must apply. When the intent's precondition does not
// hold it returns s unchanged with no effects. When the intent would break
// compatibility it returns s unchanged and a *Rejection.
func Apply(s *State, intent Intent) (*State, []Effect, error) {
	switch in := intent.(type) {
	case AddToTarget:
		return s.addTo(in, RoleTarget)
	case AddToSource:
		return s.addTo(in, RoleSource)
	case RemoveTarget:
		return s.removeTarget(in)
	case RemoveSource:
		return s.removeSource(in)
	case AddMappingForTarget:
		return s.addMappingForTarget(in)
	default:
		return s, nil, nil
	}
}

// commit builds the next state from entries and effects and appends the
// closing MappingChanged.
func (s *State) commit(entries []Entry, effects []Effect) (*State, []Effect, error) {
	next := s.with(entries)
	next.apply(effects)

	effects = append(effects, MappingChanged{Mapping: next.MappingData()})

	return next, effects, nil
}

func (s *State) snapshots(to Role) (from, dst snapshot) {
	if to == RoleTarget {
		return s.source, s.target
	}

	return s.target, s.source
}

// addTo copies the single method of an entry onto the side to and maps it.
func (s *State) addTo(intent Intent, to Role) (*State, []Effect, error) {
	e, ok := s.Entry(intent.EntryIndex())
	if !ok {
		return s, nil, nil
	}

	var peer Method

	switch to {
	case RoleTarget:
		if !e.HasSource() || e.HasTarget() {
			return s, nil, nil
		}

		peer = e.Source
	default:
		if !e.HasTarget() || e.HasSource() {
			return s, nil, nil
		}

		peer = e.Target
	}

	from, dst := s.snapshots(to)
	m := peer.Editable()
	clone := m.WithID(common.NewStem(m.ID, dst.ids()).Claim())

	res := s.planner.EntitiesToBeAddedForCopy(m, from.entities, clone, dst.entities)
	if !res.OK() {
		return s, nil, reject(intent, res.FirstIssue())
	}

	var effects []Effect
	if len(res.EntitiesToBeAdded) > 0 {
		effects = append(effects, AddEntities{Role: to, Entities: res.EntitiesToBeAdded})
	}

	effects = append(effects, SetMethod{Role: to, ID: clone.ID, Method: schema.ToPersisted(clone)})

	copied := Copied{Base: clone, CopyOfID: m.ID}

	updated := Entry{Source: peer, Target: copied, Mapped: true}
	if to == RoleSource {
		updated = Entry{Source: copied, Target: peer, Mapped: true}
	}

	entries := s.Entries()
	entries[intent.EntryIndex()] = updated

	return s.commit(entries, effects)
}

func (s *State) removeTarget(intent RemoveTarget) (*State, []Effect, error) {
	e, ok := s.Entry(intent.Index)
	if !ok || !e.HasTarget() {
		return s, nil, nil
	}

	effects := []Effect{DeleteMethod{Role: RoleTarget, ID: e.TargetID()}}

	var entries []Entry
	if e.HasSource() {
		entries = s.Entries()
		entries[intent.Index] = Entry{Source: e.Source}
	} else {
		entries = s.without(intent.Index)
	}

	return s.commit(entries, effects)
}

// removeSource detaches the source of an entry. An original source stays
// available as a new source-only entry; a copied source is deleted from the
// source side. A copied target goes away with its source, other targets are
// left unmapped.
func (s *State) removeSource(intent RemoveSource) (*State, []Effect, error) {
	e, ok := s.Entry(intent.Index)
	if !ok || !e.HasSource() {
		return s, nil, nil
	}

	var effects []Effect

	entries := s.without(intent.Index)

	switch e.Source.(type) {
	case Copied:
		effects = append(effects, DeleteMethod{Role: RoleSource, ID: e.SourceID()})
	case Original:
		entries = append(entries, Entry{Source: e.Source})
	}

	if e.HasTarget() {
		switch e.Target.(type) {
		case Copied:
			effects = append(effects, DeleteMethod{Role: RoleTarget, ID: e.TargetID()})
		case Original:
			entries = insert(entries, intent.Index, Entry{Target: e.Target})
		}
	}

	return s.commit(entries, effects)
}

// addMappingForTarget maps the candidate source onto the target of an entry.
// Rows that held the candidate give it up: an original target stays as a
// target-only row, a copied target is deleted from the target side.
func (s *State) addMappingForTarget(intent AddMappingForTarget) (*State, []Effect, error) {
	e, ok := s.Entry(intent.Index)
	if !ok || !e.HasTarget() {
		return s, nil, nil
	}

	candidate, ok := s.source.methods.Get(intent.CandidateID)
	if !ok || (e.Mapped && e.SourceID() == intent.CandidateID) {
		return s, nil, nil
	}

	issues := s.planner.Checker().CompatibilityIssues(candidate, s.source.entities, e.Target.Editable(), s.target.entities)
	if len(issues) > 0 {
		return s, nil, reject(intent, issues[0])
	}

	// Keep the provenance of the candidate if it already sits in an entry.
	var placed Method = Original{candidate}

	var effects []Effect

	entries := make([]Entry, 0, len(s.entries)+1)
	ix := -1

	for i, other := range s.entries {
		if other.SourceID() == intent.CandidateID {
			placed = other.Source
		}

		switch {
		case i == intent.Index:
			ix = len(entries)
			entries = append(entries, Entry{Source: placed, Target: e.Target, Mapped: true})
		case other.SourceID() != intent.CandidateID:
			entries = append(entries, other)
		case IsCopy(other.Target):
			effects = append(effects, DeleteMethod{Role: RoleTarget, ID: other.TargetID()})
		case other.HasTarget():
			entries = append(entries, Entry{Target: other.Target})
		}
	}

	// placed may have been found after the target entry was written.
	entries[ix].Source = placed

	if e.HasSource() && e.SourceID() != intent.CandidateID {
		entries = append(entries, Entry{Source: e.Source})
	}

	return s.commit(entries, effects)
}

func (s *State) without(ix int) []Entry {
	out := make([]Entry, 0, len(s.entries)-1)
	out = append(out, s.entries[:ix]...)

	return append(out, s.entries[ix+1:]...)
}

func insert(entries []Entry, ix int, e Entry) []Entry {
	ix = min(ix, len(entries))

	entries = append(entries, Entry{})
	copy(entries[ix+1:], entries[ix:])
	entries[ix] = e

	return entries
}
