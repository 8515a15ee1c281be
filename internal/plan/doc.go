// Package plan decides which entities must travel with a method when it is
// copied from one side of a connection to the other, and which entity
// definitions conflict between the two sides.
//
// Checks:
//  1. DetermineEntityIssues: entities reachable from either side that are
//     defined differently on the two sides (blocking issues)
//  2. ConflictsForEntityCopy: per entity name, whether it is copy-safe
//  3. EntitiesToBeAddedForCopy: the full entity closure of a method, approved
//     for copy, followed by a method compatibility check against the augmented
//     destination universe
package plan
