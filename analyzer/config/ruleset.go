package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const (
	// NestingLevel is the nesting depth check name
	NestingLevel = "Metrics.NestingLevel"
	// ValidVariableName is the variable naming check name
	ValidVariableName = "NamingConventions.ValidVariableName"

	// Version is the ruleset format version written by DefaultRuleset
	Version = "v1.0.0"

	DefaultWarnLevel  = 5
	DefaultErrorLevel = 10
)

var (
	ErrInvalidExemption   = errors.New("invalid nesting exemption")
	ErrInvalidThreshold   = errors.New("invalid nesting threshold")
	ErrUnsupportedVersion = errors.New("unsupported ruleset version")
	ErrUnknownCheck       = errors.New("unknown check")
)

// Checks lists all supported checks
var Checks = []string{NestingLevel, ValidVariableName}

// Ruleset represents analysis configuration
type Ruleset struct {
	Version                  string   `yaml:"version,omitempty"`
	Checks                   []string `yaml:"checks,omitempty"`                   // Enabled checks, all when empty
	WarnLevel                int      `yaml:"warnLevel"`                          // Nesting level above which a warning is reported
	ErrorLevel               int      `yaml:"errorLevel"`                         // Nesting level above which an error is reported
	AllowedNestingExemptions []string `yaml:"allowedNestingExemptions,omitempty"` // "<fileBaseName>::<methodName>" entries
	AllowedBareVariableNames []string `yaml:"allowedBareVariableNames,omitempty"` // Variable names exempt from camel caps check
}

// DefaultRuleset returns default configuration
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Version:                  Version,
		Checks:                   append([]string{}, Checks...),
		WarnLevel:                DefaultWarnLevel,
		ErrorLevel:               DefaultErrorLevel,
		AllowedBareVariableNames: []string{"Email"},
	}
}

// Enabled returns true if named check is enabled
func (r *Ruleset) Enabled(name string) bool {
	if len(r.Checks) == 0 {
		return true
	}
	for _, check := range r.Checks {
		if check == name {
			return true
		}
	}
	return false
}

// Validate checks ruleset consistency
func (r *Ruleset) Validate() error {
	if r.Version != "" {
		if !semver.IsValid(r.Version) {
			return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, r.Version)
		}
		if major := semver.Major(r.Version); major != semver.Major(Version) {
			return fmt.Errorf("%w: %v, expected %v", ErrUnsupportedVersion, major, semver.Major(Version))
		}
	}
	if r.WarnLevel < 0 || r.ErrorLevel < 0 {
		return fmt.Errorf("%w: levels must not be negative: warnLevel=%d, errorLevel=%d", ErrInvalidThreshold, r.WarnLevel, r.ErrorLevel)
	}
	if r.WarnLevel > r.ErrorLevel {
		return fmt.Errorf("%w: warnLevel %d exceeds errorLevel %d", ErrInvalidThreshold, r.WarnLevel, r.ErrorLevel)
	}
	for _, entry := range r.AllowedNestingExemptions {
		if _, _, err := ParseExemption(entry); err != nil {
			return err
		}
	}
outer:
	for _, name := range r.Checks {
		for _, known := range Checks {
			if name == known {
				continue outer
			}
		}
		return fmt.Errorf("%w: %v", ErrUnknownCheck, name)
	}
	return nil
}

// Exemptions creates an exemption registry seeded with configured entries
func (r *Ruleset) Exemptions() (*Exemptions, error) {
	return NewExemptions(r.AllowedNestingExemptions...)
}

// Load reads and validates YAML ruleset from URL, unset fields keep their default values
func Load(ctx context.Context, fs afs.Service, URL string) (*Ruleset, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download ruleset %s: %w", URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load ruleset %s: %w", URL, err)
	}
	return ret, nil
}

// Parse decodes and validates YAML ruleset
func Parse(data []byte) (*Ruleset, error) {
	ret := DefaultRuleset()
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode ruleset: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
