package diagnostic

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"record-copier/internal/common"
)

// Codes used by the copier.
const (
	CodeCopyFailed     = "copy_failed"
	CodeRollbackFailed = "rollback_failed"
	CodeLinkFallback   = "link_fallback"
)

// Codes used by options validation.
const (
	CodeUnknownModel     = "unknown_model"
	CodeUnknownProperty  = "unknown_property"
	CodeNotARelationship = "not_a_relationship"
	CodeDeclaredOther    = "declared_other_attribute"
	CodeOverwriteIgnored = "overwrite_ignored"
)

// Diagnostics holds all diagnostic information from one copy session.
// It is safe for concurrent use.
type Diagnostics struct {
	mu sync.Mutex

	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Record identifies the record this relates to (if any), as "Type:identity".
	Record string
	// Field identifies the attribute or relationship this relates to (if any).
	Field string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, rec, field string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Record:   rec,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, rec, field string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Record:   rec,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, rec, field string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Record:   rec,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Warnings) > 0
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// Error returns a combined error from all error diagnostics, or nil if there are none.
func (d *Diagnostics) Error() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.Errors) == 0 {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Summary renders every diagnostic on its own line.
func (d *Diagnostics) Summary() string {
	var b strings.Builder
	for _, diag := range d.All() {
		fmt.Fprintf(&b, "%s: %s\n", diag.Severity, diag)
	}

	return b.String()
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Record != "" {
		prefix = append(prefix, "["+d.Record+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
