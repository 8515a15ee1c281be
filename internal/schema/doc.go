// Package schema defines the plain data shapes exchanged with the host
// application: type references, entities, persisted REST methods and their
// editable form.
//
// Persisted methods keep their arguments in a name-keyed map; the editable
// form expands that map into an ordered argument list with explicit
// transports. ToEditable and ToPersisted convert between the two.
package schema
