package diagnostic

import (
	"fmt"

	"github.com/viant/phplint/token"
)

// Severity is a policy signal for the consumer of diagnostics
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Diagnostic represents a single rule violation
type Diagnostic struct {
	Severity Severity      `yaml:"severity"`
	Source   string        `yaml:"source"`         // Check that produced the diagnostic, e.g. Metrics.NestingLevel
	Code     string        `yaml:"code"`           // Violation code, e.g. TooHigh
	Message  string        `yaml:"message"`        // Expanded message
	Position int           `yaml:"position"`       // Token position
	Line     int           `yaml:"line"`           // 1-based line
	Column   int           `yaml:"column"`         // 1-based column
	Data     []interface{} `yaml:"data,omitempty"` // Message arguments
}

// New creates a diagnostic anchored at tok, message is expanded from template with data
func New(severity Severity, source, code, template string, tok *token.Token, data ...interface{}) *Diagnostic {
	return &Diagnostic{
		Severity: severity,
		Source:   source,
		Code:     code,
		Message:  fmt.Sprintf(template, data...),
		Position: tok.Position,
		Line:     tok.Line,
		Column:   tok.Column,
		Data:     data,
	}
}

// FullCode returns code qualified with its source
func (d *Diagnostic) FullCode() string {
	return d.Source + "." + d.Code
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%d:%d %s %s (%s)", d.Line, d.Column, d.Severity, d.Message, d.FullCode())
}
