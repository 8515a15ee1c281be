package schema

import "rest-mapper/internal/common"

// EditableArgument is one positional argument of an EditableMethod.
type EditableArgument struct {
	ID        string
	Type      TypeReference
	Transport Transport
}

// EditableMethod is a method in the form used while editing and mapping:
// its id travels with it and arguments are an ordered list.
type EditableMethod struct {
	ID           string
	Description  string
	Method       HTTPVerb
	Path         string
	Arguments    []EditableArgument
	ResponseType *TypeReference
}

// ToEditable expands a persisted method into its editable form. Argument order
// follows the insertion order of the persisted argument map.
func ToEditable(id string, m Method) EditableMethod {
	out := EditableMethod{
		ID:          id,
		Description: m.Description,
		Method:      m.Method,
		Path:        m.Path,
	}

	if m.ResponseType != nil {
		rt := *m.ResponseType
		out.ResponseType = &rt
	}

	for name, arg := range m.Arguments.All() {
		out.Arguments = append(out.Arguments, EditableArgument{
			ID:        name,
			Type:      arg.Type,
			Transport: arg.Transport,
		})
	}

	return out
}

// ToPersisted is the inverse of ToEditable. The method id is not part of the
// persisted shape; it is the key under which the caller stores the result.
func ToPersisted(e EditableMethod) Method {
	out := Method{
		Description: e.Description,
		Method:      e.Method,
		Path:        e.Path,
	}

	if e.ResponseType != nil {
		rt := *e.ResponseType
		out.ResponseType = &rt
	}

	for _, arg := range e.Arguments {
		out.Arguments.Set(arg.ID, Argument{Transport: arg.Transport, Type: arg.Type})
	}

	return out
}

// Response returns the response type, void when unset.
func (e EditableMethod) Response() TypeReference {
	return ResponseOf(e.ResponseType)
}

// Clone returns a deep copy of e.
func (e EditableMethod) Clone() EditableMethod {
	out := e
	out.Arguments = append([]EditableArgument(nil), e.Arguments...)

	if e.ResponseType != nil {
		rt := *e.ResponseType
		out.ResponseType = &rt
	}

	return out
}

// WithID returns a deep copy of e carrying a different id.
func (e EditableMethod) WithID(id string) EditableMethod {
	out := e.Clone()
	out.ID = id

	return out
}

// EditableMethods converts every method of an ordered method table.
func EditableMethods(methods *common.OrderedMap[Method]) []EditableMethod {
	out := make([]EditableMethod, 0, methods.Len())
	for id, m := range methods.All() {
		out = append(out, ToEditable(id, m))
	}

	return out
}
