package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"rest-mapper/internal/config"
	"rest-mapper/internal/diagnostic"
	"rest-mapper/internal/match"
	"rest-mapper/internal/reconcile"
)

// maxCandidates bounds the sources listed for an ambiguous target.
const maxCandidates = 3

// report is the printed result of check.
type report struct {
	Source   string        `yaml:"source" json:"source"`
	Target   string        `yaml:"target" json:"target"`
	Valid    bool          `yaml:"valid" json:"valid"`
	Entries  []reportEntry `yaml:"entries" json:"entries"`
	Issues   []string      `yaml:"issues,omitempty" json:"issues,omitempty"`
	Warnings []string      `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

type reportEntry struct {
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
	Mapped bool   `yaml:"mapped" json:"mapped"`
	Copy   bool   `yaml:"copy,omitempty" json:"copy,omitempty"`

	// Set on target-only rows only.
	Suggestion string   `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
	Candidates []string `yaml:"candidates,omitempty" json:"candidates,omitempty"`
}

func newReport(state *reconcile.State, findings diagnostic.Diagnostics) report {
	ctx := state.Context()

	rep := report{
		Source:  ctx.SourceName,
		Target:  ctx.TargetName,
		Entries: make([]reportEntry, 0, state.Len()),
	}

	for i, e := range state.Entries() {
		entry := reportEntry{
			Source: e.SourceID(),
			Target: e.TargetID(),
			Mapped: e.Mapped,
			Copy:   reconcile.IsCopy(e.Source) || reconcile.IsCopy(e.Target),
		}

		if e.HasTarget() && !e.HasSource() {
			entry.Suggestion, entry.Candidates = suggest(state.Candidates(i))
		}

		rep.Entries = append(rep.Entries, entry)
	}

	rep.Issues = append(ctx.Issues(), describe(findings.Errors)...)
	rep.Warnings = append(ctx.Warnings(), describe(findings.Warnings)...)
	rep.Valid = state.IsValid() && !findings.HasErrors()

	return rep
}

// suggest returns the source a target-only row should most likely be mapped
// to. When no source stands out it lists the closest compatible ones.
func suggest(ranked match.CandidateList) (string, []string) {
	compatible := ranked.Compatible()

	if best := compatible.HighConfidence(match.DefaultMinScore, match.DefaultMinGap); best != nil {
		return best.Source.ID, nil
	}

	if !compatible.IsAmbiguous(match.DefaultAmbiguityThreshold) {
		return "", nil
	}

	ids := make([]string, 0, maxCandidates)
	for _, c := range compatible.Top(maxCandidates) {
		ids = append(ids, c.Source.ID)
	}

	return "", ids
}

func describe(list []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.String())
	}

	return out
}

func printReport(w io.Writer, format string, rep report) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case config.OutputJSON:
		data, err = json.MarshalIndent(rep, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(rep)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = w.Write(data)

	return err
}
