package openapi

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"rest-mapper/internal/common"
	"rest-mapper/internal/diagnostic"
	"rest-mapper/internal/resource"
	"rest-mapper/internal/schema"
)

const (
	jsonMime      = "application/json"
	schemaRefBase = "#/components/schemas/"
	bodyArgument  = "body"
)

// verbs is the order operations of one path are imported in.
var verbs = []schema.HTTPVerb{
	schema.GET, schema.POST, schema.PUT, schema.PATCH, schema.DELETE, schema.HEAD, schema.OPTIONS,
}

// Result is an imported document with the findings of the import.
type Result struct {
	Document    *resource.Document
	Diagnostics diagnostic.Diagnostics
}

// ImportFile loads and imports the OpenAPI document at path.
func ImportFile(ctx context.Context, path, name string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file %s: %w", path, err)
	}

	return Import(ctx, data, name)
}

// Import converts an OpenAPI 3 document (YAML or JSON) into a REST API
// resource document. An empty name falls back to the document title.
func Import(ctx context.Context, data []byte, name string) (*Result, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("failed to validate OpenAPI document: %w", err)
	}

	if name == "" && doc.Info != nil {
		name = resourceName(doc.Info.Title)
	}

	imp := &importer{
		doc: &resource.Document{Resource: *resource.New(resource.KindAPI, name)},
		ids: make(map[string]struct{}),
	}

	imp.entities(doc)
	imp.methods(doc)

	return &Result{Document: imp.doc, Diagnostics: imp.res}, nil
}

type importer struct {
	doc *resource.Document
	res diagnostic.Diagnostics
	ids map[string]struct{}
}

func (imp *importer) entities(doc *openapi3.T) {
	if doc.Components == nil {
		return
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for n := range doc.Components.Schemas {
		names = append(names, n)
	}

	slices.Sort(names)

	for _, n := range names {
		ref := doc.Components.Schemas[n]
		if ref == nil || ref.Value == nil {
			continue
		}

		s := ref.Value

		switch {
		case s.Type.Is(openapi3.TypeString) && len(s.Enum) > 0:
			e := schema.Entity{Name: n, Type: schema.EntityEnum, Description: strings.TrimSpace(s.Description)}
			for _, v := range s.Enum {
				e.Values = append(e.Values, fmt.Sprint(v))
			}

			imp.doc.Entities = append(imp.doc.Entities, e)
		case s.Type.Is(openapi3.TypeObject) || len(s.Properties) > 0:
			e := schema.Entity{Name: n, Type: schema.EntityDTO, Description: strings.TrimSpace(s.Description)}

			props := make([]string, 0, len(s.Properties))
			for p := range s.Properties {
				props = append(props, p)
			}

			slices.Sort(props)

			for _, p := range props {
				pref := s.Properties[p]

				prop := schema.Property{Type: imp.typeOf(pref, n+"."+p)}
				if pref != nil && pref.Value != nil {
					prop.Description = strings.TrimSpace(pref.Value.Description)
				}

				e.Properties.Set(p, prop)
			}

			imp.doc.Entities = append(imp.doc.Entities, e)
		default:
			imp.res.AddInfo(diagnostic.CodeImportSkipped,
				fmt.Sprintf("Schema %s is neither an object nor a string enum and was skipped.", n), n)
		}
	}
}

func (imp *importer) methods(doc *openapi3.T) {
	if doc.Paths == nil {
		return
	}

	items := doc.Paths.Map()

	paths := make([]string, 0, len(items))
	for p := range items {
		paths = append(paths, p)
	}

	slices.Sort(paths)

	for _, p := range paths {
		item := items[p]
		if item == nil {
			continue
		}

		for _, verb := range verbs {
			op := item.GetOperation(string(verb))
			if op == nil {
				continue
			}

			id := imp.methodID(op.OperationID, verb, p)
			imp.doc.SetMethod(id, imp.method(id, verb, p, item.Parameters, op))
		}
	}
}

func (imp *importer) methodID(operationID string, verb schema.HTTPVerb, path string) string {
	stem := strings.TrimSpace(operationID)
	if stem == "" {
		stem = OperationName(verb, path)
	}

	id := common.NewStem(stem, imp.ids).Claim()
	if id != stem {
		imp.res.AddWarning(diagnostic.CodeDuplicateMethod,
			fmt.Sprintf("Method id %s is already taken, imported as %s.", stem, id), id)
	}

	return id
}

func (imp *importer) method(id string, verb schema.HTTPVerb, path string, shared openapi3.Parameters, op *openapi3.Operation) schema.Method {
	m := schema.Method{
		Description: description(op),
		Method:      verb,
		Path:        path,
	}

	for _, pref := range mergeParameters(shared, op.Parameters) {
		p := pref.Value

		transport, ok := transportOf(p.In)
		if !ok {
			imp.res.AddInfo(diagnostic.CodeImportSkipped,
				fmt.Sprintf("Parameter %s in %s is not supported and was skipped.", p.Name, p.In), id)

			continue
		}

		m.Arguments.Set(p.Name, schema.Argument{Transport: transport, Type: imp.typeOf(p.Schema, id+"."+p.Name)})
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if mt := op.RequestBody.Value.Content.Get(jsonMime); mt != nil {
			m.Arguments.Set(bodyArgument, schema.Argument{
				Transport: schema.TransportBody,
				Type:      imp.typeOf(mt.Schema, id+"."+bodyArgument),
			})
		} else {
			imp.res.AddInfo(diagnostic.CodeImportSkipped,
				"Request body has no JSON content and was skipped.", id)
		}
	}

	m.ResponseType = imp.response(id, op.Responses)

	return m
}

// response returns the type of the first 2xx response with JSON content.
func (imp *importer) response(id string, responses *openapi3.Responses) *schema.TypeReference {
	if responses == nil {
		return nil
	}

	all := responses.Map()

	codes := make([]string, 0, len(all))
	for code := range all {
		if len(code) == 3 && code[0] == '2' {
			codes = append(codes, code)
		}
	}

	slices.Sort(codes)

	for _, code := range codes {
		ref := all[code]
		if ref == nil || ref.Value == nil {
			continue
		}

		mt := ref.Value.Content.Get(jsonMime)
		if mt == nil || mt.Schema == nil {
			continue
		}

		t := imp.typeOf(mt.Schema, id+" response")

		return &t
	}

	return nil
}

// typeOf maps a schema to a type reference. References to component
// schemas become entity references; inline objects become any.
func (imp *importer) typeOf(ref *openapi3.SchemaRef, subject string) schema.TypeReference {
	if ref == nil {
		return schema.Primitive(schema.TypeAny)
	}

	if name, ok := strings.CutPrefix(ref.Ref, schemaRefBase); ok {
		return schema.EntityRef(name)
	}

	s := ref.Value
	if s == nil {
		return schema.Primitive(schema.TypeAny)
	}

	switch {
	case s.Type.Is(openapi3.TypeArray):
		return schema.ListOf(imp.typeOf(s.Items, subject))
	case s.Type.Is(openapi3.TypeString):
		switch s.Format {
		case "date", "date-time":
			return schema.Primitive(schema.TypeDate)
		case "binary", "byte":
			return schema.Primitive(schema.TypeBytes)
		}

		return schema.Primitive(schema.TypeString)
	case s.Type.Is(openapi3.TypeInteger):
		if s.Format == "int64" {
			return schema.Primitive(schema.TypeLong)
		}

		return schema.Primitive(schema.TypeInteger)
	case s.Type.Is(openapi3.TypeNumber):
		switch s.Format {
		case "float":
			return schema.Primitive(schema.TypeFloat)
		case "double":
			return schema.Primitive(schema.TypeDouble)
		}

		return schema.Primitive(schema.TypeNumber)
	case s.Type.Is(openapi3.TypeBoolean):
		return schema.Primitive(schema.TypeBoolean)
	case s.Type.Is(openapi3.TypeObject):
		imp.res.AddInfo(diagnostic.CodeImportSkipped, "Inline object schema imported as any.", subject)
	}

	return schema.Primitive(schema.TypeAny)
}

// mergeParameters returns the path level parameters overridden by the
// operation level ones, in declaration order.
func mergeParameters(shared, own openapi3.Parameters) []*openapi3.ParameterRef {
	var out []*openapi3.ParameterRef

	index := make(map[string]int)
	for _, list := range []openapi3.Parameters{shared, own} {
		for _, pref := range list {
			if pref == nil || pref.Value == nil {
				continue
			}

			key := pref.Value.In + ":" + pref.Value.Name
			if i, ok := index[key]; ok {
				out[i] = pref
				continue
			}

			index[key] = len(out)
			out = append(out, pref)
		}
	}

	return out
}

func transportOf(in string) (schema.Transport, bool) {
	switch in {
	case openapi3.ParameterInPath:
		return schema.TransportPath, true
	case openapi3.ParameterInQuery:
		return schema.TransportQuery, true
	case openapi3.ParameterInHeader:
		return schema.TransportHeader, true
	default:
		return "", false
	}
}

func description(op *openapi3.Operation) string {
	if d := strings.TrimSpace(op.Description); d != "" {
		return d
	}

	return strings.TrimSpace(op.Summary)
}

// OperationName derives a method id from a verb and a path:
// GET /tasks/{id} is getTasksId.
func OperationName(verb schema.HTTPVerb, path string) string {
	var b strings.Builder

	b.WriteString(strings.ToLower(string(verb)))

	words := strings.FieldsFunc(path, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}

	return b.String()
}

// resourceName turns a document title into a resource name: "Task API" is task-api.
func resourceName(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}
