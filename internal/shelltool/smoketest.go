// SPDX-License-Identifier: MPL-2.0

package shelltool

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"bundleforge/internal/issue"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// SmokeTestResult is the captured outcome of running a bundle's optional
// smoke-test command.
type SmokeTestResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// RunSmokeTest parses and runs script in dir through the portable mvdan.cc/sh
// interpreter rather than shelling out to /bin/sh, so the smoke test behaves
// identically across platforms. A non-zero exit is reported as the captured
// ExitCode, not a Go error; only a syntax error or interpreter setup failure
// returns an error.
func RunSmokeTest(ctx context.Context, dir, script string) (SmokeTestResult, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "smoke-test")
	if err != nil {
		return SmokeTestResult{}, issue.NewErrorContext().
			WithOperation("run smoke test").
			WithResource(dir).
			WithSuggestion("check the test command for shell syntax errors").
			Wrap(err).
			BuildError()
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron()),
		interp.StdIO(nil, &stdout, &stderr),
	)
	if err != nil {
		return SmokeTestResult{}, issue.NewErrorContext().
			WithOperation("run smoke test").
			WithResource(dir).
			Wrap(err).
			BuildError()
	}

	result := SmokeTestResult{}
	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			result.ExitCode = int(exitStatus)
		} else {
			result.Stdout, result.Stderr = stdout.String(), stderr.String()
			return result, issue.NewErrorContext().
				WithOperation("run smoke test").
				WithResource(dir).
				Wrap(err).
				BuildError()
		}
	}

	result.Stdout, result.Stderr = stdout.String(), stderr.String()
	return result, nil
}
