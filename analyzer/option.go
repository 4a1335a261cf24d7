package analyzer

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/phplint/analyzer/config"
)

type Option func(*Analyzer)

// WithRuleset sets ruleset used to configure default checks
func WithRuleset(ruleset *config.Ruleset) Option {
	return func(a *Analyzer) {
		a.ruleset = ruleset
	}
}

// WithExemptions sets shared nesting exemption registry, ruleset entries are registered into it
func WithExemptions(exemptions *config.Exemptions) Option {
	return func(a *Analyzer) {
		a.exemptions = exemptions
	}
}

// WithExemption exempts fileName::method from nesting warnings
func WithExemption(fileName, method string) Option {
	return func(a *Analyzer) {
		a.pending = append(a.pending, [2]string{fileName, method})
	}
}

// WithChecks replaces default checks
func WithChecks(checks ...Check) Option {
	return func(a *Analyzer) {
		a.checks = append(a.checks, checks...)
	}
}

// WithLogger sets structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithConcurrency limits number of files analyzed in parallel
func WithConcurrency(limit int) Option {
	return func(a *Analyzer) {
		a.concurrency = limit
	}
}

// WithFS sets abstract file storage service
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}
