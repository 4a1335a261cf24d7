// Package analyzer dispatches tokenized PHP sources to registered checks.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/viant/afs"
	"github.com/viant/phplint/analyzer/config"
	"github.com/viant/phplint/analyzer/diagnostic"
	"github.com/viant/phplint/analyzer/naming"
	"github.com/viant/phplint/analyzer/nesting"
	"github.com/viant/phplint/inspector"
	"github.com/viant/phplint/inspector/repository"
	"github.com/viant/phplint/token"
)

// Check inspects a token the check registered for
type Check interface {
	// Name returns check source name, e.g. Metrics.NestingLevel
	Name() string
	// Kinds returns token kinds the check listens for
	Kinds() []token.Kind
	// Inspect returns diagnostics for token at pos
	Inspect(stream *token.Stream, pos int) []*diagnostic.Diagnostic
}

// Analyzer runs checks over PHP files
type Analyzer struct {
	fs          afs.Service
	ruleset     *config.Ruleset
	exemptions  *config.Exemptions
	pending     [][2]string
	checks      []Check
	dispatch    map[token.Kind][]Check
	factory     *inspector.Factory
	detector    *repository.Detector
	logger      *slog.Logger
	concurrency int
	cache       *cache
}

// New creates an analyzer, by default with nesting and naming checks configured from default ruleset
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{cache: newCache()}
	for _, opt := range opts {
		opt(a)
	}
	if a.fs == nil {
		a.fs = afs.New()
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.concurrency <= 0 {
		a.concurrency = runtime.NumCPU()
	}
	if a.ruleset == nil {
		a.ruleset = config.DefaultRuleset()
	}
	if err := a.ruleset.Validate(); err != nil {
		return nil, err
	}
	if err := a.initExemptions(); err != nil {
		return nil, err
	}
	if len(a.checks) == 0 {
		a.checks = a.defaultChecks()
	}
	a.dispatch = map[token.Kind][]Check{}
	for _, check := range a.checks {
		for _, kind := range check.Kinds() {
			a.dispatch[kind] = append(a.dispatch[kind], check)
		}
	}
	a.factory = inspector.NewFactory(a.fs)
	a.detector = repository.New()
	return a, nil
}

func (a *Analyzer) initExemptions() error {
	if a.exemptions == nil {
		exemptions, err := a.ruleset.Exemptions()
		if err != nil {
			return err
		}
		a.exemptions = exemptions
	} else {
		for _, entry := range a.ruleset.AllowedNestingExemptions {
			fileName, method, err := config.ParseExemption(entry)
			if err != nil {
				return err
			}
			a.exemptions.Register(fileName, method)
		}
	}
	for _, pair := range a.pending {
		a.exemptions.Register(pair[0], pair[1])
	}
	a.pending = nil
	return nil
}

func (a *Analyzer) defaultChecks() []Check {
	var checks []Check
	if a.ruleset.Enabled(config.NestingLevel) {
		checks = append(checks, nesting.New(a.ruleset.WarnLevel, a.ruleset.ErrorLevel, a.exemptions))
	}
	if a.ruleset.Enabled(config.ValidVariableName) {
		checks = append(checks, naming.New(a.ruleset.AllowedBareVariableNames...))
	}
	return checks
}

// Exemptions returns nesting exemption registry, entries registered later apply to subsequent analyses
func (a *Analyzer) Exemptions() *config.Exemptions {
	return a.exemptions
}

// Ruleset returns effective ruleset
func (a *Analyzer) Ruleset() *config.Ruleset {
	return a.ruleset
}

// AnalyzeStream dispatches every token of a validated stream to checks registered for its kind
func (a *Analyzer) AnalyzeStream(stream *token.Stream) ([]*diagnostic.Diagnostic, error) {
	if err := stream.Validate(); err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", stream.Filename, err)
	}
	var diagnostics []*diagnostic.Diagnostic
	for pos := 0; pos < stream.Len(); pos++ {
		tok := stream.Token(pos)
		for _, check := range a.dispatch[tok.Kind] {
			diagnostics = append(diagnostics, check.Inspect(stream, pos)...)
		}
	}
	return diagnostics, nil
}

// AnalyzeSource tokenizes and analyzes PHP source, unchanged sources return cached result
func (a *Analyzer) AnalyzeSource(filename string, src []byte) (*FileResult, error) {
	hash := a.cache.sum(src)
	version := a.exemptions.Version()
	if result, ok := a.cache.get(filename, hash, version); ok {
		a.logger.Debug("analyzed file", "url", filename, "diagnostics", len(result.Diagnostics), "cached", true)
		return result, nil
	}
	insp, err := a.factory.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	stream, err := insp.InspectSource(src, filename)
	if err != nil {
		return nil, err
	}
	diagnostics, err := a.AnalyzeStream(stream)
	if err != nil {
		return nil, err
	}
	result := &FileResult{URL: filename, Hash: hash, Diagnostics: diagnostics}
	a.cache.put(filename, hash, version, result)
	a.logger.Debug("analyzed file", "url", filename, "tokens", stream.Len(), "diagnostics", len(diagnostics), "cached", false)
	return result, nil
}

// AnalyzeFile downloads and analyzes a PHP file
func (a *Analyzer) AnalyzeFile(ctx context.Context, URL string) (*FileResult, error) {
	if !inspector.IsSupported(URL) {
		return nil, fmt.Errorf("failed to analyze %s: unsupported file type", URL)
	}
	src, err := a.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return a.AnalyzeSource(URL, src)
}
