package plan

import (
	"fmt"
	"strings"

	"rest-mapper/internal/common"
	"rest-mapper/internal/entity"
	"rest-mapper/internal/match"
	"rest-mapper/internal/schema"
)

// Planner runs copy and conflict checks with a shared compatibility checker.
type Planner struct {
	checker *match.Checker
}

// NewPlanner creates a Planner. A nil checker selects the default structural one.
func NewPlanner(checker *match.Checker) *Planner {
	if checker == nil {
		checker = match.NewChecker(nil)
	}

	return &Planner{checker: checker}
}

// Checker returns the compatibility checker used by the planner.
func (p *Planner) Checker() *match.Checker {
	return p.checker
}

// DetermineEntityIssues reports every entity reachable from either side's
// methods that exists on both sides with a different structure. One issue is
// produced per entity, in discovery order: source side first, then target.
func (p *Planner) DetermineEntityIssues(source, target Universe) []string {
	var names common.Set

	for _, name := range entity.UsedByMethods(source.Methods, source.Entities) {
		names.Add(name)
	}

	for _, name := range entity.UsedByMethods(target.Methods, target.Entities) {
		names.Add(name)
	}

	var issues []string

	for _, name := range names.Values() {
		se, okS := source.Entities.Get(name)
		te, okT := target.Entities.Get(name)

		if !okS || !okT {
			continue
		}

		reasons := p.checker.Oracle().StructuralIssues(se, te, source.Entities, target.Entities)
		if len(reasons) == 0 {
			continue
		}

		issues = append(issues, fmt.Sprintf("Entity %s is defined differently in %s and %s: %s",
			name, source.Name, target.Name, strings.Join(reasons, "; ")))
	}

	return issues
}

// ConflictsForEntityCopy checks, for each name, whether the entity can be
// made available on the destination. Entities that exist on both sides must
// be compatible. Entities missing on the destination are approved for copy,
// then kept only if they stay compatible with themselves when their
// references resolve against the destination plus the other approved
// entities.
func (p *Planner) ConflictsForEntityCopy(names []string, from, to schema.EntitySet) ([]schema.Entity, []string) {
	var (
		approved []schema.Entity
		issues   []string
	)

	oracle := p.checker.Oracle()

	for _, name := range names {
		src, inFrom := from.Get(name)
		dst, inTo := to.Get(name)

		switch {
		case !inFrom && inTo:
			// Already available on the destination.
		case !inFrom && !inTo:
			issues = append(issues, fmt.Sprintf("Entity %s is not defined", name))
		case !inTo:
			approved = append(approved, src)
		default:
			if reasons := oracle.StructuralIssues(src, dst, from, to); len(reasons) > 0 {
				issues = append(issues, fmt.Sprintf("Entity %s conflicts with the existing definition: %s",
					name, strings.Join(reasons, "; ")))
			}
		}
	}

	if len(approved) == 0 {
		return nil, issues
	}

	augmented := to.Union(approved...)

	var kept []schema.Entity

	for _, e := range approved {
		reasons := oracle.StructuralIssues(e, e, from, augmented)
		if len(reasons) > 0 {
			issues = append(issues, fmt.Sprintf("Entity %s cannot be copied: %s", e.Name, strings.Join(reasons, "; ")))
			continue
		}

		kept = append(kept, e.Clone())
	}

	return kept, issues
}

// EntitiesToBeAddedForCopy checks whether fromMethod, defined against
// fromSet, can stand in for toMethod on a side whose entities are toSet.
// Every entity reachable from fromMethod must pass ConflictsForEntityCopy and
// the methods must then be compatible in the augmented destination universe.
// The result never mixes issues with entities to add.
func (p *Planner) EntitiesToBeAddedForCopy(
	fromMethod schema.EditableMethod, fromSet schema.EntitySet,
	toMethod schema.EditableMethod, toSet schema.EntitySet,
) CopyResult {
	names := entity.UsedByMethod(fromMethod, fromSet)

	toAdd, issues := p.ConflictsForEntityCopy(names, fromSet, toSet)
	if len(issues) > 0 {
		return CopyResult{Issues: issues}
	}

	augmented := toSet.Union(toAdd...)
	if issues := p.checker.CompatibilityIssues(fromMethod, fromSet, toMethod, augmented); len(issues) > 0 {
		return CopyResult{Issues: issues}
	}

	return CopyResult{EntitiesToBeAdded: toAdd}
}
