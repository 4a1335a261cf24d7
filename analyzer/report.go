package analyzer

import (
	"github.com/viant/phplint/analyzer/diagnostic"
	"github.com/viant/phplint/inspector/repository"
)

// FileResult holds diagnostics of a single file in dispatch order
type FileResult struct {
	URL         string                   `yaml:"url"`
	Path        string                   `yaml:"path,omitempty"`  // Path relative to analyzed location
	Hash        uint64                   `yaml:"hash"`            // Content hash
	Error       string                   `yaml:"error,omitempty"` // Tokenization failure
	Diagnostics []*diagnostic.Diagnostic `yaml:"diagnostics,omitempty"`
}

// Counts returns number of error and warning diagnostics
func (r *FileResult) Counts() (errors, warnings int) {
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case diagnostic.Error:
			errors++
		case diagnostic.Warning:
			warnings++
		}
	}
	return errors, warnings
}

// Report holds results of analyzed location
type Report struct {
	Location string              `yaml:"location"`
	Project  *repository.Project `yaml:"project,omitempty"`
	Files    []*FileResult       `yaml:"files"`
	Summary  Summary             `yaml:"summary"`
}

// Summary aggregates report counts
type Summary struct {
	Files    int `yaml:"files"`
	Errors   int `yaml:"errors"`
	Warnings int `yaml:"warnings"`
	Failed   int `yaml:"failed,omitempty"` // Files that could not be tokenized
}

// Counts returns number of error and warning diagnostics across files
func (r *Report) Counts() (errors, warnings int) {
	for _, file := range r.Files {
		fileErrors, fileWarnings := file.Counts()
		errors += fileErrors
		warnings += fileWarnings
	}
	return errors, warnings
}

func (r *Report) summarize() {
	r.Summary = Summary{Files: len(r.Files)}
	r.Summary.Errors, r.Summary.Warnings = r.Counts()
	for _, file := range r.Files {
		if file.Error != "" {
			r.Summary.Failed++
		}
	}
}
