package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/phplint/analyzer"
	"gopkg.in/yaml.v3"
)

const deepSource = `<?php
function deep($a)
{
    if ($a) {
        if ($a) {
            if ($a) {
                return $a;
            }
        }
    }
}
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Deep.php"), []byte(deepSource), 0644))
	ruleset := filepath.Join(dir, "ruleset.yaml")
	require.NoError(t, os.WriteFile(ruleset, []byte("version: v1.0.0\nwarnLevel: 1\nerrorLevel: 5\n"), 0644))
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("version: v2.0.0\n"), 0644))

	testCases := []struct {
		description  string
		args         []string
		expectCode   int
		expectErrors int
		expectWarns  int
	}{
		{
			description: "clean with default levels",
			args:        []string{dir},
			expectCode:  exitOK,
		},
		{
			description: "warning from ruleset",
			args:        []string{"-ruleset", ruleset, dir},
			expectCode:  exitOK,
			expectWarns: 1,
		},
		{
			description: "exempted warning",
			args:        []string{"-ruleset", ruleset, "-exempt", "Deep.php::deep", dir},
			expectCode:  exitOK,
		},
		{
			description:  "error level from flag",
			args:         []string{"-warn", "1", "-error", "2", "-exempt", "Deep.php::deep", dir},
			expectCode:   exitViolations,
			expectErrors: 1,
		},
		{
			description: "invalid ruleset",
			args:        []string{"-ruleset", invalid, dir},
			expectCode:  exitFailure,
		},
		{
			description: "invalid exemption",
			args:        []string{"-exempt", "deep", dir},
			expectCode:  exitFailure,
		},
		{
			description: "missing path",
			args:        []string{},
			expectCode:  exitFailure,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			code := run(context.Background(), testCase.args, stdout, stderr)
			assert.Equal(t, testCase.expectCode, code, stderr.String())
			if code == exitFailure {
				return
			}
			var reports []*analyzer.Report
			require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &reports))
			require.Len(t, reports, 1)
			assert.Equal(t, testCase.expectErrors, reports[0].Summary.Errors)
			assert.Equal(t, testCase.expectWarns, reports[0].Summary.Warnings)
		})
	}
}
