package reconcile

import "rest-mapper/internal/schema"

// Method is a method placed in a mapping entry. It is either an Original,
// authored on its own side, or a Copied clone of a method on the other side.
type Method interface {
	// Editable returns the method definition.
	Editable() schema.EditableMethod
	// ID returns the method id on its own side.
	ID() string

	sealed()
}

// Original is a method authored on its own side.
type Original struct {
	schema.EditableMethod
}

// Copied is a method cloned from the peer method CopyOfID on the other side.
type Copied struct {
	Base     schema.EditableMethod
	CopyOfID string
}

// Editable implements Method.
func (m Original) Editable() schema.EditableMethod { return m.EditableMethod }

// ID implements Method.
func (m Original) ID() string { return m.EditableMethod.ID }

func (Original) sealed() {}

// Editable implements Method.
func (m Copied) Editable() schema.EditableMethod { return m.Base }

// ID implements Method.
func (m Copied) ID() string { return m.Base.ID }

func (Copied) sealed() {}

// CopyOf returns the peer id m was copied from, if m is a copy.
func CopyOf(m Method) (string, bool) {
	if v, ok := m.(Copied); ok {
		return v.CopyOfID, true
	}

	return "", false
}

// IsCopy reports whether m is a Copied method.
func IsCopy(m Method) bool {
	_, ok := CopyOf(m)
	return ok
}
