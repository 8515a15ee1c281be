package reconcile

import (
	"errors"
	"fmt"
)

// Intent is a user request against a State. Index refers to State.Entries.
type Intent interface {
	// Name returns the intent name used in logs.
	Name() string
	// EntryIndex returns the entry the intent applies to.
	EntryIndex() int
}

// AddToTarget copies the source of a source-only entry onto the target side
// and maps the pair.
type AddToTarget struct{ Index int }

// AddToSource copies the target of a target-only entry onto the source side
// and maps the pair.
type AddToSource struct{ Index int }

// RemoveTarget deletes the target method of an entry.
type RemoveTarget struct{ Index int }

// RemoveSource detaches the source method of an entry.
type RemoveSource struct{ Index int }

// AddMappingForTarget maps the source method CandidateID onto the target of
// an entry.
type AddMappingForTarget struct {
	Index       int
	CandidateID string
}

func (AddToTarget) Name() string         { return "addToTarget" }
func (AddToSource) Name() string         { return "addToSource" }
func (RemoveTarget) Name() string        { return "removeTarget" }
func (RemoveSource) Name() string        { return "removeSource" }
func (AddMappingForTarget) Name() string { return "addMappingForTarget" }

func (i AddToTarget) EntryIndex() int         { return i.Index }
func (i AddToSource) EntryIndex() int         { return i.Index }
func (i RemoveTarget) EntryIndex() int        { return i.Index }
func (i RemoveSource) EntryIndex() int        { return i.Index }
func (i AddMappingForTarget) EntryIndex() int { return i.Index }

// ErrRejected matches every *Rejection with errors.Is.
var ErrRejected = errors.New("intent rejected")

// Rejection is returned when an intent would break compatibility. The state
// is left unchanged.
type Rejection struct {
	Intent Intent
	Reason string
}

// Error implements error.
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s rejected: %s", r.Intent.Name(), r.Reason)
}

// Is reports whether target is ErrRejected.
func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}

func reject(intent Intent, reason string) error {
	return &Rejection{Intent: intent, Reason: reason}
}
