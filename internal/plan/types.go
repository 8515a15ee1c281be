package plan

import (
	"rest-mapper/internal/common"
	"rest-mapper/internal/schema"
)

// Universe is one side of a connection as seen by the planner.
type Universe struct {
	Name     string
	Methods  []schema.EditableMethod
	Entities schema.EntitySet
}

// CopyResult is the outcome of a method copy check. Exactly one of Issues
// and EntitiesToBeAdded is non-empty, or both are empty when the method needs
// no entities and copies cleanly.
type CopyResult struct {
	Issues            []string
	EntitiesToBeAdded []schema.Entity
}

// OK reports whether the copy may proceed.
func (r CopyResult) OK() bool {
	return common.IsEmpty(r.Issues)
}

// FirstIssue returns the first issue, or an empty string.
func (r CopyResult) FirstIssue() string {
	return common.FirstOr(r.Issues, "")
}
