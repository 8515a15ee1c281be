// Package entity provides the entity compatibility oracle and the entity
// reachability resolver.
//
// Key functions:
//   - Oracle: name-based structural comparison of entities across two universes
//   - StructuralOracle: the default, cycle-safe Oracle implementation
//   - UsedByMethod / UsedByMethods: transitive closure of entity names used by methods
package entity
