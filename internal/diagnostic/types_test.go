package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Severities(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning(CodeStaleMethod, "Mapped method a did not exist and was removed.", "a")
	d.AddInfo(CodeCopySkipped, "skipped", "b")
	assert.True(t, d.IsValid())

	d.AddError(CodeEntityConflict, "User differs", "User")
	assert.True(t, d.HasErrors())

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "User: [entity_conflict] User differs", err.Error())

	assert.Equal(t, []string{"Mapped method a did not exist and was removed."}, Messages(d.Warnings))
	assert.Equal(t, SeverityInfo, d.Infos[0].Severity)
	assert.Equal(t, []string{CodeEntityConflict}, Codes(d.Errors))
	assert.Empty(t, Codes(nil))
}

func TestDiagnostics_MergeAndClone(t *testing.T) {
	var a, b Diagnostics

	a.AddError("x", "first", "")
	b.AddError("y", "second", "")
	b.AddWarning("z", "third", "")

	c := a.Clone()
	a.Merge(b)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, c.Errors, 1)
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s        Severity
		expected string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.s.String())
		})
	}
}

func TestDiagnostic_StringWithoutSubject(t *testing.T) {
	d := Diagnostic{Code: "c", Message: "m"}
	assert.Equal(t, "[c] m", d.String())

	d = Diagnostic{Message: "plain"}
	assert.Equal(t, "plain", d.String())
}
