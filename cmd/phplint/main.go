// Command phplint checks PHP sources for excessive nesting and variable naming violations.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/viant/phplint/analyzer"
	"github.com/viant/phplint/analyzer/config"
	"gopkg.in/yaml.v3"
)

const (
	exitOK = iota
	exitViolations
	exitFailure
)

type exemptions []string

func (e *exemptions) String() string {
	return strings.Join(*e, ",")
}

func (e *exemptions) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("phplint", flag.ContinueOnError)
	flags.SetOutput(stderr)
	rulesetURL := flags.String("ruleset", "", "ruleset YAML location")
	warnLevel := flags.Int("warn", -1, "nesting level above which a warning is reported")
	errorLevel := flags.Int("error", -1, "nesting level above which an error is reported")
	verbose := flags.Bool("v", false, "debug logging")
	var exempt exemptions
	flags.Var(&exempt, "exempt", "file::method exempt from nesting warnings, repeatable")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: phplint [-ruleset file.yaml] [-warn N] [-error N] [-exempt file::method]... [-v] path...")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return exitFailure
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitFailure
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ruleset := config.DefaultRuleset()
	if *rulesetURL != "" {
		var err error
		if ruleset, err = config.Load(ctx, nil, *rulesetURL); err != nil {
			logger.Error("failed to load ruleset", "url", *rulesetURL, "error", err)
			return exitFailure
		}
	}
	if *warnLevel >= 0 {
		ruleset.WarnLevel = *warnLevel
	}
	if *errorLevel >= 0 {
		ruleset.ErrorLevel = *errorLevel
	}
	ruleset.AllowedNestingExemptions = append(ruleset.AllowedNestingExemptions, exempt...)

	srv, err := analyzer.New(analyzer.WithRuleset(ruleset), analyzer.WithLogger(logger))
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return exitFailure
	}

	var reports []*analyzer.Report
	violations := false
	for _, location := range flags.Args() {
		report, err := srv.AnalyzeProject(ctx, location)
		if err != nil {
			logger.Error("failed to analyze", "url", location, "error", err)
			return exitFailure
		}
		if errors, _ := report.Counts(); errors > 0 {
			violations = true
		}
		reports = append(reports, report)
	}

	encoder := yaml.NewEncoder(stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(reports); err != nil {
		logger.Error("failed to write report", "error", err)
		return exitFailure
	}
	if err := encoder.Close(); err != nil {
		return exitFailure
	}
	if violations {
		return exitViolations
	}
	return exitOK
}
