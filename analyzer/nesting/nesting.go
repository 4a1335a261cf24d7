// Package nesting reports functions whose control-flow nesting exceeds configured levels.
package nesting

import (
	"path"
	"path/filepath"

	"github.com/viant/phplint/analyzer/config"
	"github.com/viant/phplint/analyzer/diagnostic"
	"github.com/viant/phplint/token"
)

const (
	CodeTooHigh     = "TooHigh"
	CodeMaxExceeded = "MaxExceeded"

	tooHighMessage     = "Function's nesting level (%v) exceeds %v; consider refactoring the function"
	maxExceededMessage = "Function's nesting level (%v) exceeds allowed maximum of %v"
)

// Record holds nesting metrics of a single function
type Record struct {
	FunctionPosition int
	MaxDepth         int
	FunctionDepth    int
}

// EffectiveDepth excludes the function's own body level
func (r *Record) EffectiveDepth() int {
	return r.MaxDepth - r.FunctionDepth - 1
}

// Check implements nesting level check
type Check struct {
	warnLevel  int
	errorLevel int
	exemptions *config.Exemptions
}

// New creates a nesting check
func New(warnLevel, errorLevel int, exemptions *config.Exemptions) *Check {
	return &Check{warnLevel: warnLevel, errorLevel: errorLevel, exemptions: exemptions}
}

// Name returns check name
func (c *Check) Name() string {
	return config.NestingLevel
}

// Kinds returns token kinds the check listens for, closures are measured as part of their enclosing function
func (c *Check) Kinds() []token.Kind {
	return []token.Kind{token.Function}
}

// Measure computes nesting record of function at pos, it returns false for functions without body
func Measure(stream *token.Stream, pos int) (*Record, bool) {
	fn := stream.Token(pos)
	if fn == nil || !fn.HasScope() {
		return nil, false
	}
	record := &Record{FunctionPosition: pos, FunctionDepth: fn.Level, MaxDepth: fn.Level}
	for i := fn.ScopeOpener + 1; i < fn.ScopeCloser; i++ {
		if level := stream.Token(i).Level; level > record.MaxDepth {
			record.MaxDepth = level
		}
	}
	return record, true
}

// Inspect reports function at pos
func (c *Check) Inspect(stream *token.Stream, pos int) []*diagnostic.Diagnostic {
	record, ok := Measure(stream, pos)
	if !ok {
		return nil
	}
	fn := stream.Token(pos)
	depth := record.EffectiveDepth()
	if depth > c.errorLevel {
		return []*diagnostic.Diagnostic{
			diagnostic.New(diagnostic.Error, c.Name(), CodeMaxExceeded, maxExceededMessage, fn, depth, c.errorLevel),
		}
	}
	if depth <= c.warnLevel {
		return nil
	}
	if c.exemptions.Has(baseName(stream.Filename), functionName(stream, pos)) {
		return nil
	}
	return []*diagnostic.Diagnostic{
		diagnostic.New(diagnostic.Warning, c.Name(), CodeTooHigh, tooHighMessage, fn, depth, c.warnLevel),
	}
}

func functionName(stream *token.Stream, pos int) string {
	if name := stream.Token(stream.FindNext([]token.Kind{token.String}, pos, -1, false)); name != nil {
		return name.Content
	}
	return ""
}

func baseName(name string) string {
	return path.Base(filepath.ToSlash(name))
}
