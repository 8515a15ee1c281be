// Package mapping defines the persisted connection mapping between a REST
// API (the provider) and a REST Client (the consumer), with YAML and JSON
// loading and structural validation.
//
// # Schema Overview
//
// The mapping is keyed by provider method id, in document order:
//
//	getTask:
//	  targetId: getTask
//	  type: EXACT
//	addTask:
//	  targetId: createTask
//	  type: EXACT
//
// The JSON form has the same shape.
//
// # Mapping Types
//
// Only EXACT is supported: a 1:1 pairing of structurally compatible methods.
// Other types are parsed so that documents round-trip, reported by Validate,
// and ignored when a mapping is rebuilt.
package mapping
