package reconcile

import (
	"rest-mapper/internal/resource"
	"rest-mapper/internal/schema"
)

type argSpec struct {
	name      string
	transport schema.Transport
	typ       string
}

func pathArg(name, typ string) argSpec  { return argSpec{name, schema.TransportPath, typ} }
func queryArg(name, typ string) argSpec { return argSpec{name, schema.TransportQuery, typ} }
func bodyArg(name, typ string) argSpec  { return argSpec{name, schema.TransportBody, typ} }

func newMethod(verb schema.HTTPVerb, path, response string, args ...argSpec) schema.Method {
	m := schema.Method{Method: verb, Path: path}

	for _, a := range args {
		m.Arguments.Set(a.name, schema.Argument{Transport: a.transport, Type: schema.ParseTypeReference(a.typ)})
	}

	if response != "" {
		rt := schema.ParseTypeReference(response)
		m.ResponseType = &rt
	}

	return m
}

type def struct {
	id string
	m  schema.Method
}

func newResource(kind, name string, defs ...def) *resource.Resource {
	r := resource.New(kind, name)
	for _, d := range defs {
		r.SetMethod(d.id, d.m)
	}

	return r
}

func dto(name string, props ...string) schema.Entity {
	e := schema.Entity{Name: name, Type: schema.EntityDTO}
	for i := 0; i+1 < len(props); i += 2 {
		e.Properties.Set(props[i], schema.Property{Type: schema.ParseTypeReference(props[i+1])})
	}

	return e
}

var (
	getTask = newMethod(schema.GET, "/tasks/{id}", "Task", pathArg("id", "string"))
	addTask = newMethod(schema.POST, "/tasks/{id}", "", bodyArg("task", "Task"))

	taskEntities = schema.EntitySet{dto("Task", "id", "string")}
)

func taskAPI() *resource.Resource {
	return newResource(resource.KindAPI, "tasks", def{"getTask", getTask}, def{"addTask", addTask})
}

func emptyClient() *resource.Resource {
	return newResource(resource.KindClient, "tasks-client")
}

// freshSides is an API with getTask and addTask and an empty client, both
// knowing Task.
func freshSides() (Side, Side) {
	return Side{Resource: taskAPI(), Entities: taskEntities.Clone()},
		Side{Resource: emptyClient(), Entities: taskEntities.Clone()}
}

func ids(methods []schema.EditableMethod) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, m.ID)
	}

	return out
}

// rows describes entries as "source->target", "source->" or "->target",
// with a trailing "*" for mapped rows.
func rows(s *State) []string {
	out := make([]string, 0, s.Len())
	for _, e := range s.Entries() {
		row := e.SourceID() + "->" + e.TargetID()
		if e.Mapped {
			row += "*"
		}

		out = append(out, row)
	}

	return out
}
