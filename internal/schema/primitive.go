package schema

// Built-in (primitive) type names. Anything else names an entity.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeFloat   = "float"
	TypeDouble  = "double"
	TypeLong    = "long"
	TypeBoolean = "boolean"
	TypeVoid    = "void"
	TypeDate    = "date"
	TypeAny     = "any"
	TypeBytes   = "bytes"
)

var builtinTypes = map[string]struct{}{
	TypeString:  {},
	TypeNumber:  {},
	TypeInteger: {},
	TypeFloat:   {},
	TypeDouble:  {},
	TypeLong:    {},
	TypeBoolean: {},
	TypeVoid:    {},
	TypeDate:    {},
	TypeAny:     {},
	TypeBytes:   {},
}

// IsBuiltin reports whether name is a primitive type name.
func IsBuiltin(name string) bool {
	_, ok := builtinTypes[name]
	return ok
}
