// Package diagnostics collects the lints, debug notes, and errors a
// compile run produces, grouped by source path and rendered the way a
// compiler driver would report them to a terminal.
//
// A Diagnostic is distinct from a Go error: an error aborts whatever call
// produced it, while a Diagnostic is accumulated throughout a run and only
// inspected once compilation finishes (or fails).
package diagnostics

import (
	"fmt"
	"sort"
	"strings"
)

// Level orders diagnostics from informational to fatal.
type Level int

const (
	Lint Level = iota
	CompilerDebug
	Error
	InternalError
)

func (l Level) String() string {
	switch l {
	case Lint:
		return "lint"
	case CompilerDebug:
		return "debug"
	case Error:
		return "error"
	case InternalError:
		return "internal error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported item, optionally located at a line/column
// in some source path.
type Diagnostic struct {
	Level   Level
	Message string
	Line    int
	Col     int
}

func (d Diagnostic) String() string {
	if d.Line == 0 && d.Col == 0 {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Col, d.Level, d.Message)
}

// ByPath groups diagnostics by the source path they were reported against.
type ByPath struct {
	paths map[string][]Diagnostic
	order []string
}

// New returns an empty collection.
func New() *ByPath {
	return &ByPath{paths: make(map[string][]Diagnostic)}
}

// Add records a diagnostic against path.
func (d *ByPath) Add(path string, diag Diagnostic) {
	if _, ok := d.paths[path]; !ok {
		d.order = append(d.order, path)
	}
	d.paths[path] = append(d.paths[path], diag)
}

// HasErrors reports whether any diagnostic at Error or InternalError level
// was recorded.
func (d *ByPath) HasErrors() bool {
	for _, path := range d.order {
		for _, diag := range d.paths[path] {
			if diag.Level == Error || diag.Level == InternalError {
				return true
			}
		}
	}
	return false
}

// HasInternalErrors reports whether any InternalError-level diagnostic was
// recorded — these indicate a bug in the compiler itself, not the input
// program.
func (d *ByPath) HasInternalErrors() bool {
	for _, path := range d.order {
		for _, diag := range d.paths[path] {
			if diag.Level == InternalError {
				return true
			}
		}
	}
	return false
}

// Count returns the total number of diagnostics across all paths.
func (d *ByPath) Count() int {
	n := 0
	for _, path := range d.order {
		n += len(d.paths[path])
	}
	return n
}

// Paths returns the recorded paths in first-seen order.
func (d *ByPath) Paths() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// For returns the diagnostics recorded against path, in report order.
func (d *ByPath) For(path string) []Diagnostic {
	return d.paths[path]
}

// String renders every diagnostic grouped by path, followed by a
// "Failed with N error(s)" summary when any errors were recorded.
func (d *ByPath) String() string {
	var b strings.Builder
	paths := append([]string(nil), d.order...)
	sort.Strings(paths)
	for _, path := range paths {
		for _, diag := range d.paths[path] {
			fmt.Fprintf(&b, "%s: %s\n", path, diag)
		}
	}
	errCount := 0
	for _, path := range d.order {
		for _, diag := range d.paths[path] {
			if diag.Level == Error || diag.Level == InternalError {
				errCount++
			}
		}
	}
	if errCount > 0 {
		fmt.Fprintf(&b, "Failed with %d error(s)\n", errCount)
	}
	return b.String()
}
