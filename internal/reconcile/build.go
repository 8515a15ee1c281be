package reconcile

import (
	"fmt"
	"sort"

	"rest-mapper/internal/common"
	"rest-mapper/internal/diagnostic"
	"rest-mapper/internal/mapping"
	"rest-mapper/internal/plan"
	"rest-mapper/internal/schema"
)

// Build derives the mapping state of a connection. Inputs are not modified.
// Methods and entities written onto a side are returned as effects. The
// effects end with a MappingChanged whenever anything was written or the
// derived mapping differs from persisted.
func Build(source, target Side, persisted *mapping.Connection, opts ...Option) (*State, []Effect) {
	o := newOptions(opts)

	b := &builder{
		planner: o.planner(),
		source:  newSnapshot(source),
		target:  newSnapshot(target),
	}

	b.ctx.SourceName = b.source.name
	b.ctx.TargetName = b.target.name

	for _, issue := range b.planner.DetermineEntityIssues(b.source.universe(), b.target.universe()) {
		b.ctx.Diagnostics.AddError(diagnostic.CodeEntityConflict, issue, "")
	}

	switch {
	case persisted.Len() > 0:
		b.restore(persisted)
	case b.source.methods.Len() == 0 || b.target.methods.Len() == 0:
		b.copyAcross()
	default:
		b.autoMap()
	}

	b.addRemaining()

	sort.SliceStable(b.entries, func(i, j int) bool {
		a, c := b.entries[i], b.entries[j]
		if a.Mapped != c.Mapped {
			return a.Mapped
		}

		return a.HasSource() && !c.HasSource()
	})

	state := &State{
		entries: b.entries,
		source:  b.source,
		target:  b.target,
		ctx:     b.ctx,
		planner: b.planner,
	}

	derived := state.MappingData()
	if len(b.effects) > 0 || !mapping.Equal(derived, persisted) {
		b.effects = append(b.effects, MappingChanged{Mapping: derived})
	}

	return state, b.effects
}

type builder struct {
	planner        *plan.Planner
	source, target snapshot
	ctx            Context
	entries        []Entry
	effects        []Effect

	usedSource, usedTarget common.Set
}

func (b *builder) push(e Entry) {
	if e.HasSource() {
		b.usedSource.Add(e.SourceID())
	}

	if e.HasTarget() {
		b.usedTarget.Add(e.TargetID())
	}

	b.entries = append(b.entries, e)
}

// restore replays a persisted mapping against the current definitions.
func (b *builder) restore(persisted *mapping.Connection) {
	checker := b.planner.Checker()

	for sourceID, mm := range persisted.All() {
		if !mm.Type.IsSupported() {
			b.ctx.Diagnostics.AddInfo(diagnostic.CodeUnsupportedMappingType,
				fmt.Sprintf("Mapping type %s is not supported and was ignored.", mm.Type), sourceID)

			continue
		}

		src, okS := b.source.methods.Get(sourceID)
		if !okS {
			b.ctx.Diagnostics.AddWarning(diagnostic.CodeStaleMethod,
				fmt.Sprintf("Mapped method %s did not exist and was removed.", sourceID), sourceID)

			continue
		}

		tgt, okT := b.target.methods.Get(mm.TargetID)
		if !okT {
			b.ctx.Diagnostics.AddWarning(diagnostic.CodeStaleMethod,
				fmt.Sprintf("Mapped method %s did not exist and was removed.", mm.TargetID), sourceID)

			continue
		}

		if b.usedTarget.Has(mm.TargetID) {
			b.ctx.Diagnostics.AddWarning(diagnostic.CodeDuplicateTarget,
				fmt.Sprintf("Method %s was mapped more than once; the mapping from %s was removed.", mm.TargetID, sourceID), sourceID)

			continue
		}

		if issue, found := common.First(checker.CompatibilityIssues(src, b.source.entities, tgt, b.target.entities)); found {
			b.ctx.Diagnostics.AddWarning(diagnostic.CodeIncompatibleMapping,
				fmt.Sprintf("Mapped methods %s and %s are no longer compatible and were unmapped: %s", sourceID, mm.TargetID, issue),
				sourceID)

			b.push(Entry{Source: Original{src}})
			b.push(Entry{Target: Original{tgt}})

			continue
		}

		b.push(Entry{Source: Original{src}, Target: Original{tgt}, Mapped: true})
	}
}

// copyAcross handles a new connection where at least one side has no
// methods: the methods of the other side are copied onto it.
func (b *builder) copyAcross() {
	b.ctx.ClientWasEmpty = b.target.methods.Len() == 0
	b.ctx.ServerWasEmpty = b.source.methods.Len() == 0

	switch {
	case b.ctx.ClientWasEmpty && b.ctx.ServerWasEmpty:
		return
	case b.ctx.ClientWasEmpty:
		b.copyAll(RoleTarget)
	default:
		b.copyAll(RoleSource)
	}
}

func (b *builder) copyAll(to Role) {
	from, dst := &b.source, &b.target
	if to == RoleSource {
		from, dst = &b.target, &b.source
	}

	for _, m := range from.list() {
		id := common.NewStem(m.ID, dst.ids()).Claim()
		clone := m.WithID(id)

		res := b.planner.EntitiesToBeAddedForCopy(m, from.entities, clone, dst.entities)
		if !res.OK() {
			b.ctx.Diagnostics.AddInfo(diagnostic.CodeCopySkipped,
				fmt.Sprintf("Method %s was not copied: %s", m.ID, res.FirstIssue()), m.ID)

			continue
		}

		if len(res.EntitiesToBeAdded) > 0 {
			dst.entities = dst.entities.Union(res.EntitiesToBeAdded...)
			b.effects = append(b.effects, AddEntities{Role: to, Entities: res.EntitiesToBeAdded})
		}

		dst.methods.Set(id, clone)
		b.effects = append(b.effects, SetMethod{Role: to, ID: id, Method: schema.ToPersisted(clone)})

		copied := Copied{Base: clone, CopyOfID: m.ID}
		if to == RoleTarget {
			b.push(Entry{Source: Original{m}, Target: copied, Mapped: true})
		} else {
			b.push(Entry{Source: copied, Target: Original{m}, Mapped: true})
		}
	}
}

// autoMap pairs each source method with the first unused target method, in
// target order, that it could be copied onto. Entities the pair needs are
// added to the target. Earlier choices are never revisited.
func (b *builder) autoMap() {
	targets := b.target.list()

	for _, src := range b.source.list() {
		for _, tgt := range targets {
			if b.usedTarget.Has(tgt.ID) {
				continue
			}

			res := b.planner.EntitiesToBeAddedForCopy(src, b.source.entities, tgt, b.target.entities)
			if !res.OK() {
				continue
			}

			if len(res.EntitiesToBeAdded) > 0 {
				b.target.entities = b.target.entities.Union(res.EntitiesToBeAdded...)
				b.effects = append(b.effects, AddEntities{Role: RoleTarget, Entities: res.EntitiesToBeAdded})
			}

			b.push(Entry{Source: Original{src}, Target: Original{tgt}, Mapped: true})

			break
		}
	}
}

// addRemaining appends every method not placed yet as an unmapped entry.
func (b *builder) addRemaining() {
	for _, m := range b.source.list() {
		if !b.usedSource.Has(m.ID) {
			b.push(Entry{Source: Original{m}})
		}
	}

	for _, m := range b.target.list() {
		if !b.usedTarget.Has(m.ID) {
			b.push(Entry{Target: Original{m}})
		}
	}
}
