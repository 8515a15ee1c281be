package dsl

import (
	"strings"

	"rest-mapper/internal/common"
	"rest-mapper/internal/schema"
)

// SourceType is the type tag stored next to the rendered text.
const SourceType = "kapeta-dsl"

var annotations = map[schema.Transport]string{
	schema.TransportQuery:  "@Query",
	schema.TransportPath:   "@Path",
	schema.TransportBody:   "@Body",
	schema.TransportHeader: "@Header",
}

// Render returns the text representation of methods.
func Render(methods *common.OrderedMap[schema.Method]) string {
	blocks := make([]string, 0, methods.Len())
	for id, m := range methods.All() {
		blocks = append(blocks, RenderMethod(id, m))
	}

	return strings.Join(blocks, "\n\n")
}

// RenderMethod returns the block for a single method.
func RenderMethod(id string, m schema.Method) string {
	var b strings.Builder

	if desc := strings.TrimSpace(m.Description); desc != "" {
		b.WriteString("/**\n")

		for _, line := range strings.Split(desc, "\n") {
			b.WriteString(strings.TrimRight(" * "+strings.TrimSpace(line), " "))
			b.WriteByte('\n')
		}

		b.WriteString(" */\n")
	}

	b.WriteString("@")
	b.WriteString(string(m.Method))
	b.WriteString(`("`)
	b.WriteString(m.Path)
	b.WriteString("\")\n")

	b.WriteString(id)
	b.WriteByte('(')

	i := 0
	for name, arg := range m.Arguments.All() {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(annotation(arg.Transport))
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(arg.Type.String())
		i++
	}

	b.WriteString("):")
	b.WriteString(schema.ResponseOf(m.ResponseType).String())

	return b.String()
}

func annotation(t schema.Transport) string {
	if a, ok := annotations[t]; ok {
		return a
	}

	return "@" + common.UnknownStr
}
