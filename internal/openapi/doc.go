// Package openapi imports OpenAPI 3 documents as REST API resource documents.
//
// Operations become methods, parameters and JSON request bodies become
// arguments, the first successful JSON response becomes the response type and
// named component schemas become entities. Anything that cannot be expressed
// is skipped and reported as a diagnostic.
package openapi
