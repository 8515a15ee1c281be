// Package match decides whether two REST methods, each defined against its
// own entity universe, are interchangeable, and ranks candidate source
// methods for a target method.
//
// Key functions:
//   - Checker.CompatibilityIssues: positional, structural method comparison
//   - Checker.TransportDifferences: argument transport comparison used by validation
//   - NormalizeIdent, NormalizePath: normalization for fuzzy matching
//   - Levenshtein: edit distance between identifiers
//   - Checker.RankCandidates: ranks potential source methods for a target
package match
