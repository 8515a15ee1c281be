package mapping

import (
	"fmt"
	"slices"

	"rest-mapper/internal/diagnostic"
)

// Validate checks a connection mapping structurally. When sourceIDs or
// targetIDs is non-nil, referenced method ids are also checked against them;
// stale references are warnings since rebuilding drops them.
func Validate(conn *Connection, sourceIDs, targetIDs []string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if conn == nil {
		return res
	}

	seenTargets := map[string]string{}

	for sourceID, mm := range conn.All() {
		if mm.TargetID == "" {
			res.AddError(diagnostic.CodeEmptyTarget, "mapping has no targetId", sourceID)
			continue
		}

		if !mm.Type.IsSupported() {
			res.AddWarning(diagnostic.CodeUnsupportedMappingType,
				fmt.Sprintf("mapping type %q is not supported and will be ignored", mm.Type), sourceID)
		}

		if prev, ok := seenTargets[mm.TargetID]; ok {
			res.AddError(diagnostic.CodeDuplicateTarget,
				fmt.Sprintf("target %s is already mapped from %s", mm.TargetID, prev), sourceID)
		} else {
			seenTargets[mm.TargetID] = sourceID
		}

		if sourceIDs != nil && !slices.Contains(sourceIDs, sourceID) {
			res.AddWarning(diagnostic.CodeStaleMethod,
				fmt.Sprintf("source method %s does not exist", sourceID), sourceID)
		}

		if targetIDs != nil && !slices.Contains(targetIDs, mm.TargetID) {
			res.AddWarning(diagnostic.CodeStaleMethod,
				fmt.Sprintf("target method %s does not exist", mm.TargetID), sourceID)
		}
	}

	return res
}
