// Package reconcile keeps a mapping between the methods of a REST API (the
// source) and a REST Client (the target) valid while both sides evolve.
//
// Build derives the initial State from the two sides and an optional
// persisted mapping:
//   - restored: a persisted mapping is replayed and re-validated; stale or
//     no longer compatible pairs are dropped or split with a warning
//   - fresh: one side has no methods, so every copyable method of the other
//     side is cloned across together with the entities it needs
//   - fresh, both populated: source methods are greedily paired with the
//     first compatible target method in target order
//
// Apply is the state transition for user intents. It never mutates its input
// state; side effects on the resources are returned as Effect values that a
// host, usually a Session, applies.
package reconcile
