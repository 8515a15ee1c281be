package resource

import (
	"rest-mapper/internal/common"
	"rest-mapper/internal/dsl"
	"rest-mapper/internal/schema"
)

// Resource kinds.
const (
	KindAPI    = "core/rest-api"
	KindClient = "core/rest-client"
)

// Resource is a named REST API or REST Client definition.
type Resource struct {
	Kind     string           `yaml:"kind" json:"kind" validate:"required,oneof=core/rest-api core/rest-client"`
	Metadata Metadata         `yaml:"metadata" json:"metadata"`
	Spec     RESTResourceSpec `yaml:"spec" json:"spec"`
}

// Metadata identifies a resource.
type Metadata struct {
	Name string `yaml:"name" json:"name" validate:"required"`
}

// RESTResourceSpec is the method table of a resource and its derived text.
type RESTResourceSpec struct {
	Methods common.OrderedMap[schema.Method] `yaml:"methods,omitempty" json:"methods,omitzero"`
	Source  *SourceCode                      `yaml:"source,omitempty" json:"source,omitempty"`
}

// SourceCode is the derived text representation of the method table.
type SourceCode struct {
	Type  string `yaml:"type" json:"type"`
	Value string `yaml:"value" json:"value"`
}

// New creates an empty resource of the given kind.
func New(kind, name string) *Resource {
	return &Resource{Kind: kind, Metadata: Metadata{Name: name}}
}

// Name returns the resource name.
func (r *Resource) Name() string {
	if r == nil {
		return ""
	}

	return r.Metadata.Name
}

// MethodIDs returns method ids in table order.
func (r *Resource) MethodIDs() []string {
	if r == nil {
		return nil
	}

	return r.Spec.Methods.Keys()
}

// Method returns the method stored under id.
func (r *Resource) Method(id string) (schema.Method, bool) {
	if r == nil {
		return schema.Method{}, false
	}

	return r.Spec.Methods.Get(id)
}

// EditableMethods returns every method in editable form, in table order.
func (r *Resource) EditableMethods() []schema.EditableMethod {
	if r == nil {
		return nil
	}

	return schema.EditableMethods(&r.Spec.Methods)
}

// SetMethod stores m under id and regenerates the source text. A new id is
// appended at the end of the table; an existing id keeps its position.
func (r *Resource) SetMethod(id string, m schema.Method) {
	r.Spec.Methods.Set(id, m.Clone())
	r.RegenerateSource()
}

// DeleteMethod removes the method stored under id and regenerates the
// source text. It reports whether a method was removed.
func (r *Resource) DeleteMethod(id string) bool {
	if !r.Spec.Methods.Delete(id) {
		return false
	}

	r.RegenerateSource()

	return true
}

// RegenerateSource rebuilds spec.source from spec.methods.
func (r *Resource) RegenerateSource() {
	r.Spec.Source = &SourceCode{
		Type:  dsl.SourceType,
		Value: dsl.Render(&r.Spec.Methods),
	}
}

// Clone returns a deep copy of r.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}

	out := &Resource{
		Kind:     r.Kind,
		Metadata: r.Metadata,
	}

	for id, m := range r.Spec.Methods.All() {
		out.Spec.Methods.Set(id, m.Clone())
	}

	if r.Spec.Source != nil {
		src := *r.Spec.Source
		out.Spec.Source = &src
	}

	return out
}
