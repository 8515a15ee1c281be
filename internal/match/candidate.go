package match

import (
	"sort"

	"rest-mapper/internal/schema"
)

// Candidate is a potential source method for a target method.
type Candidate struct {
	Source schema.EditableMethod

	// Scoring components
	NameScore float64  // Similarity of normalized method ids (0-1)
	PathScore float64  // Similarity of normalized paths (0-1)
	SameVerb  bool     // HTTP verbs are equal
	Issues    []string // Compatibility issues; empty means an EXACT mapping is possible

	// Combined score for ranking (higher is better)
	Score float64
}

// Compatible reports whether the candidate can be mapped EXACT.
func (c Candidate) Compatible() bool {
	return len(c.Issues) == 0
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every source method against target. Compatible
// candidates come first, then higher scores, then source ids alphabetically.
func (c *Checker) RankCandidates(
	target schema.EditableMethod, targetSet schema.EntitySet,
	sources []schema.EditableMethod, sourceSet schema.EntitySet,
) CandidateList {
	candidates := make(CandidateList, 0, len(sources))

	targetPath := NormalizePath(target.Path)

	for _, source := range sources {
		nameScore := max(
			Similarity(NormalizeIdent(source.ID), NormalizeIdent(target.ID)),
			Similarity(NormalizeIdentWithoutAction(source.ID), NormalizeIdentWithoutAction(target.ID)),
		)

		pathScore := Similarity(NormalizePath(source.Path), targetPath)
		sameVerb := source.Method == target.Method

		candidates = append(candidates, Candidate{
			Source:    source,
			NameScore: nameScore,
			PathScore: pathScore,
			SameVerb:  sameVerb,
			Issues:    c.CompatibilityIssues(source, sourceSet, target, targetSet),
			Score:     combinedScore(nameScore, pathScore, sameVerb),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// combinedScore weights:
//   - name similarity: 50%
//   - path similarity: 30%
//   - verb equality: 20%
func combinedScore(nameScore, pathScore float64, sameVerb bool) float64 {
	const (
		nameWeight = 0.5
		pathWeight = 0.3
		verbWeight = 0.2
	)

	score := nameScore*nameWeight + pathScore*pathWeight
	if sameVerb {
		score += verbWeight
	}

	return score
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Compatible() != c[j].Compatible() {
		return c[i].Compatible()
	}

	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Source.ID < c[j].Source.ID
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// Compatible returns only the candidates that can be mapped EXACT.
func (c CandidateList) Compatible() CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Compatible() {
			result = append(result, cand)
		}
	}

	return result
}

// IsAmbiguous reports whether the top two candidates are within threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < threshold
}

// HighConfidence returns the best candidate when it is compatible, scores at
// least minScore and leads the runner-up by minGap. Otherwise it returns nil.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || !best.Compatible() || best.Score < minScore {
		return nil
	}

	if len(c) > 1 && c[1].Compatible() && best.Score-c[1].Score < minGap {
		return nil
	}

	return best
}

// Confidence thresholds for suggesting a candidate.
const (
	// DefaultMinScore is the minimum combined score for a suggestion.
	DefaultMinScore = 0.7
	// DefaultMinGap is the minimum score gap between top candidates.
	DefaultMinGap = 0.15
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
)
