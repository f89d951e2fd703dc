// Package diag is Athena's diagnostic facility: uniform error kinds, source
// spans, rendered context and remediation suggestions. Every pipeline stage
// reports failures through here instead of returning raw errors, so the CLI
// layer always gets the same caret-diagram shape regardless of which pass
// failed.
package diag

import (
	"fmt"
	"strings"

	"athena/pkg/model"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}
	return "Error"
}

type Kind string

const (
	KindParseError     Kind = "ParseError"
	KindReferenceError Kind = "ReferenceError"
	KindDuplicateError Kind = "DuplicateError"
	KindPortConflict   Kind = "PortConflict"
	KindCycleError     Kind = "CycleError"
	KindOptionError    Kind = "OptionError"
	KindShapeError     Kind = "ShapeError"
	KindInternal       Kind = "Internal"
)

// Diagnostic is a single reported problem, carrying everything Render needs
// to reproduce the caret-diagram rendering contract below.
type Diagnostic struct {
	Severity         Severity
	Kind             Kind
	Primary          model.Span
	Secondary        []model.Span
	AffectedServices []string
	Message          string
	Suggestion       string
}

// Render produces:
//
//	Error: <kind>: <message>
//	   |
//	 L | <source line L>
//	   |                   ^ Error here
//	Affected services: a, b, c
//
//	Suggestion: <suggestion text>
func (d Diagnostic) Render(source string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s: %s\n", d.Severity, d.Kind, d.Message)

	lines := strings.Split(source, "\n")
	if d.Primary.StartLine >= 1 && d.Primary.StartLine <= len(lines) {
		line := lines[d.Primary.StartLine-1]
		b.WriteString("   |\n")
		fmt.Fprintf(&b, "%2d | %s\n", d.Primary.StartLine, line)
		b.WriteString("   | ")
		col := d.Primary.StartCol
		if col < 1 {
			col = 1
		}
		b.WriteString(strings.Repeat(" ", col-1))
		b.WriteString("^ Error here\n")
	}

	if len(d.AffectedServices) > 0 {
		fmt.Fprintf(&b, "Affected services: %s\n", strings.Join(d.AffectedServices, ", "))
	}

	if d.Suggestion != "" {
		fmt.Fprintf(&b, "\nSuggestion: %s\n", d.Suggestion)
	}

	return b.String()
}

// Internal builds a best-effort diagnostic for an unreachable state. The
// facility never panics; this is where a guard clause lands instead.
func Internal(msg string) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Kind:     KindInternal,
		Message:  msg,
	}
}

// Collector is the accumulation buffer a single compile pass appends to:
// no exception-based control flow, the driver decides whether to abort
// based on what's in here.
type Collector struct {
	diagnostics []Diagnostic
}

func (c *Collector) Add(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

func (c *Collector) Internal(msg string) {
	c.Add(Internal(msg))
}

func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

func (c *Collector) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

func (c *Collector) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}
