// Package resource holds REST API and REST Client resource definitions and
// the documents that pair a resource with its entity set.
//
// The method table of a resource is only changed through SetMethod and
// DeleteMethod, which regenerate spec.source after every change so the
// derived text representation never drifts from spec.methods.
package resource
