package match

import (
	"fmt"

	"rest-mapper/internal/entity"
	"rest-mapper/internal/schema"
)

// Checker judges method interchangeability. Entity-typed positions are
// delegated to the configured entity.Oracle.
type Checker struct {
	oracle entity.Oracle
}

// NewChecker creates a Checker. A nil oracle selects entity.StructuralOracle.
func NewChecker(oracle entity.Oracle) *Checker {
	if oracle == nil {
		oracle = entity.NewStructuralOracle()
	}

	return &Checker{oracle: oracle}
}

// Oracle returns the entity oracle used by the checker.
func (c *Checker) Oracle() entity.Oracle {
	return c.oracle
}

// CompatibilityIssues returns the reasons a and b cannot be mapped EXACT.
// Arguments are compared by position; their names and transports are ignored.
func (c *Checker) CompatibilityIssues(
	a schema.EditableMethod, aSet schema.EntitySet,
	b schema.EditableMethod, bSet schema.EntitySet,
) []string {
	var issues []string

	issues = append(issues, c.typeIssues("response type", a.Response(), aSet, b.Response(), bSet)...)

	if len(a.Arguments) != len(b.Arguments) {
		issues = append(issues, fmt.Sprintf("argument count differs: %d != %d", len(a.Arguments), len(b.Arguments)))
	}

	n := min(len(a.Arguments), len(b.Arguments))
	for i := range n {
		label := fmt.Sprintf("argument %d", i+1)
		issues = append(issues, c.typeIssues(label, a.Arguments[i].Type, aSet, b.Arguments[i].Type, bSet)...)
	}

	return issues
}

// IsCompatible reports whether a and b have no compatibility issues.
func (c *Checker) IsCompatible(
	a schema.EditableMethod, aSet schema.EntitySet,
	b schema.EditableMethod, bSet schema.EntitySet,
) bool {
	return len(c.CompatibilityIssues(a, aSet, b, bSet)) == 0
}

func (c *Checker) typeIssues(
	label string,
	ta schema.TypeReference, aSet schema.EntitySet,
	tb schema.TypeReference, bSet schema.EntitySet,
) []string {
	mismatch := []string{fmt.Sprintf("%s: %s is not compatible with %s", label, ta, tb)}

	if ta.IsEntity() != tb.IsEntity() || ta.List != tb.List {
		return mismatch
	}

	if !ta.IsEntity() {
		if ta.String() != tb.String() {
			return mismatch
		}

		return nil
	}

	ea, okA := aSet.Get(ta.Ref)
	eb, okB := bSet.Get(tb.Ref)

	switch {
	case !okA && !okB:
		return []string{fmt.Sprintf("%s: entity %s is not defined on either side", label, ta.Ref)}
	case !okA:
		return []string{fmt.Sprintf("%s: entity %s is not defined on this side", label, ta.Ref)}
	case !okB:
		return []string{fmt.Sprintf("%s: entity %s is not defined on the other side", label, tb.Ref)}
	}

	var issues []string
	for _, reason := range c.oracle.StructuralIssues(ea, eb, aSet, bSet) {
		issues = append(issues, label+": "+reason)
	}

	return issues
}

// TransportDifferences lists argument positions whose transports differ.
// Only positions present on both sides are compared.
func TransportDifferences(a, b schema.EditableMethod) []string {
	var diffs []string

	n := min(len(a.Arguments), len(b.Arguments))
	for i := range n {
		ta, tb := a.Arguments[i].Transport, b.Arguments[i].Transport
		if ta != tb {
			diffs = append(diffs, fmt.Sprintf("argument %d (%s/%s): transport %s != %s",
				i+1, a.Arguments[i].ID, b.Arguments[i].ID, ta, tb))
		}
	}

	return diffs
}
