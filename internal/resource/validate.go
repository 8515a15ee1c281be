package resource

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"

	"rest-mapper/internal/diagnostic"
	"rest-mapper/internal/schema"
)

var (
	validate = validator.New()
	pathVar  = regexp.MustCompile(`\{([^{}/]+)\}`)
)

// PathVariables returns the {variable} names of path in order.
func PathVariables(path string) []string {
	var out []string
	for _, m := range pathVar.FindAllStringSubmatch(path, -1) {
		out = append(out, m[1])
	}

	return out
}

// Validate checks a resource document: struct constraints on the resource,
// its methods, arguments and entities, path variable bindings, body
// arguments, and entity references.
func Validate(doc *Document) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if doc == nil {
		return res
	}

	structErrors(res, &doc.Resource, doc.Name())

	for id, m := range doc.Spec.Methods.All() {
		validateMethod(res, id, m, doc.Entities)
	}

	validateEntities(res, doc.Entities)

	return res
}

func validateMethod(res *diagnostic.Diagnostics, id string, m schema.Method, entities schema.EntitySet) {
	structErrors(res, &m, id)

	vars := PathVariables(m.Path)
	bodies := 0

	for name, arg := range m.Arguments.All() {
		subject := id + "." + name

		structErrors(res, &arg, subject)

		switch arg.Transport {
		case schema.TransportPath:
			if !slices.Contains(vars, name) {
				res.AddError(diagnostic.CodePathVariableMissing,
					fmt.Sprintf("path %s has no {%s} variable", m.Path, name), subject)
			}
		case schema.TransportBody:
			bodies++
		}

		checkReference(res, arg.Type, entities, subject)
	}

	for _, v := range vars {
		arg, ok := m.Arguments.Get(v)
		if !ok || arg.Transport != schema.TransportPath {
			res.AddError(diagnostic.CodePathArgumentMissing,
				fmt.Sprintf("path variable {%s} has no PATH argument", v), id)
		}
	}

	if bodies > 1 {
		res.AddError(diagnostic.CodeMultipleBodies, fmt.Sprintf("%d BODY arguments, at most one allowed", bodies), id)
	}

	if bodies > 0 && (m.Method == schema.GET || m.Method == schema.HEAD) {
		res.AddWarning(diagnostic.CodeBodyNotAllowed, fmt.Sprintf("%s requests should not carry a body", m.Method), id)
	}

	checkReference(res, schema.ResponseOf(m.ResponseType), entities, id)
}

func validateEntities(res *diagnostic.Diagnostics, entities schema.EntitySet) {
	seen := map[string]struct{}{}

	for i := range entities {
		e := &entities[i]

		if _, dup := seen[e.Name]; dup {
			res.AddError(diagnostic.CodeDuplicateEntity, "entity is defined more than once", e.Name)
			continue
		}

		seen[e.Name] = struct{}{}

		structErrors(res, e, e.Name)

		for name, p := range e.Properties.All() {
			checkReference(res, p.Type, entities, e.Name+"."+name)
		}
	}
}

func checkReference(res *diagnostic.Diagnostics, t schema.TypeReference, entities schema.EntitySet, subject string) {
	if t.IsEntity() && !entities.Has(t.Ref) {
		res.AddWarning(diagnostic.CodeUnknownEntity, fmt.Sprintf("entity %s is not defined", t.Ref), subject)
	}
}

func structErrors(res *diagnostic.Diagnostics, v any, subject string) {
	err := validate.Struct(v)
	if err == nil {
		return
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		res.AddError(diagnostic.CodeInvalidField, err.Error(), subject)
		return
	}

	for _, fe := range valErrs {
		res.AddError(diagnostic.CodeInvalidField, fmt.Sprintf("%s: %s", fe.Namespace(), formatFieldError(fe)), subject)
	}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "startswith":
		return fmt.Sprintf("must start with %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
