// Package diag defines the diagnostic collection used by every phase of
// the compiler pipeline (lexer, scope builder, closure runtime, resolver,
// type checker). It plays the same role as go/scanner.ErrorList does in
// github.com/mna/nenuphar: a sortable bag of diagnostics that a phase
// drains as far as practical before aborting, with a single Err() to turn
// it back into an error for callers that only care about success/failure.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stillwwater/superini/lang/token"
)

// Severity distinguishes diagnostics that abort compilation from those
// that don't.
type Severity int

const (
	// Error aborts compilation; no output file is produced.
	Error Severity = iota
	// Warning is reported but compilation continues with a best-effort
	// value.
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single error or warning, always carrying the code and
// trace required by spec section 7: file, line and enclosing scope name.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g. "E00", "W01"
	Message  string
	Pos      token.Position
	Scope    string // enclosing scope name, "" for __global__
}

// Error implements the error interface so a single Diagnostic can be
// used directly wherever Go code expects an error.
func (d Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	scope := d.Scope
	if scope == "" {
		scope = "__global__"
	}
	fmt.Fprintf(&b, "  --> %s [%s]", d.Pos, scope)
	return b.String()
}

// List is an ordered collection of diagnostics accumulated across a
// phase (or the whole pipeline). It is not safe for concurrent use; the
// pipeline is strictly sequential (spec section 5).
type List struct {
	diags []Diagnostic
}

// Add appends a new diagnostic to the list.
func (l *List) Add(d Diagnostic) {
	l.diags = append(l.diags, d)
}

// Errorf is a convenience wrapper around Add for Severity == Error.
func (l *List) Errorf(code string, pos token.Position, scope, format string, args ...any) {
	l.Add(Diagnostic{Severity: Error, Code: code, Message: fmt.Sprintf(format, args...), Pos: pos, Scope: scope})
}

// Warnf is a convenience wrapper around Add for Severity == Warning.
func (l *List) Warnf(code string, pos token.Position, scope, format string, args ...any) {
	l.Add(Diagnostic{Severity: Warning, Code: code, Message: fmt.Sprintf(format, args...), Pos: pos, Scope: scope})
}

// HasErrors reports whether the list contains at least one Error-severity
// diagnostic.
func (l *List) HasErrors() bool {
	for _, d := range l.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns every diagnostic collected so far, in insertion order
// (or sorted order, if Sort was called).
func (l *List) All() []Diagnostic {
	return l.diags
}

// Sort orders diagnostics by file, then line, preserving relative order
// of diagnostics on the same line (errors from the same phase tend to be
// emitted in source order already, this just makes diagnostics from
// multiple included files deterministic).
func (l *List) Sort() {
	sort.SliceStable(l.diags, func(i, j int) bool {
		a, b := l.diags[i], l.diags[j]
		if a.Pos.Filename != b.Pos.Filename {
			return a.Pos.Filename < b.Pos.Filename
		}
		return a.Pos.Line < b.Pos.Line
	})
}

// Err returns l as an error if it contains at least one Error-severity
// diagnostic, else nil. Warnings alone never cause Err to return non-nil
// (spec section 7: "warnings ... compilation continues").
func (l *List) Err() error {
	if !l.HasErrors() {
		return nil
	}
	return listError(l.diags)
}

// listError is the concrete error type returned by Err; it formats every
// diagnostic, error or warning, so callers that print err.Error() see the
// full picture, not just the first failure.
type listError []Diagnostic

func (e listError) Error() string {
	parts := make([]string, len(e))
	for i, d := range e {
		parts[i] = d.Error()
	}
	return strings.Join(parts, "\n")
}

// Unwrap lets callers use errors.Is/As against individual diagnostics,
// mirroring go/scanner.ErrorList's Unwrap() []error contract.
func (e listError) Unwrap() []error {
	errs := make([]error, len(e))
	for i, d := range e {
		errs[i] = d
	}
	return errs
}
