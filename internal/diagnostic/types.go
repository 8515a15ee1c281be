package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"rest-mapper/internal/common"
)

// Diagnostics holds all diagnostic information from a build or validation pass.
type Diagnostics struct {
	Errors   []Diagnostic `yaml:"errors,omitempty" json:"errors,omitempty"`
	Warnings []Diagnostic `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Infos    []Diagnostic `yaml:"infos,omitempty" json:"infos,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `yaml:"severity" json:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `yaml:"code" json:"code"`
	// Message is the human-readable description.
	Message string `yaml:"message" json:"message"`
	// Subject names the method, entity or mapping row this relates to (if any).
	Subject string `yaml:"subject,omitempty" json:"subject,omitempty"`
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic codes.
const (
	CodeEntityConflict         = "entity_conflict"
	CodeStaleMethod            = "stale_method"
	CodeIncompatibleMapping    = "incompatible_mapping"
	CodeDuplicateTarget        = "duplicate_target"
	CodeUnsupportedMappingType = "unsupported_mapping_type"
	CodeEmptyTarget            = "empty_target"
	CodeCopySkipped            = "copy_skipped"
	CodeTransportMismatch      = "transport_mismatch"
	CodeInvalidField           = "invalid_field"
	CodePathArgumentMissing    = "path_argument_missing"
	CodePathVariableMissing    = "path_variable_missing"
	CodeMultipleBodies         = "multiple_bodies"
	CodeBodyNotAllowed         = "body_not_allowed"
	CodeDuplicateEntity        = "duplicate_entity"
	CodeUnknownEntity          = "unknown_entity"
	CodeImportSkipped          = "import_skipped"
	CodeDuplicateMethod        = "duplicate_method"
)

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, subject string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Subject:  subject,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, subject string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Subject:  subject,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, subject string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Subject:  subject,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Clone returns a copy that does not share backing arrays with d.
func (d Diagnostics) Clone() Diagnostics {
	return Diagnostics{
		Errors:   append([]Diagnostic(nil), d.Errors...),
		Warnings: append([]Diagnostic(nil), d.Warnings...),
		Infos:    append([]Diagnostic(nil), d.Infos...),
	}
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Messages returns the plain messages of the given diagnostics, in order.
func Messages(list []Diagnostic) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.Message)
	}

	return out
}

// Codes returns the codes of the given diagnostics, in order.
func Codes(list []Diagnostic) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.Code)
	}

	return out
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Subject != "" {
		return d.Subject + ": " + msg
	}

	return msg
}
