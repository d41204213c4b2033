// SPDX-License-Identifier: EPL-2.0

// Package bundlevalidate defines the policy-violation data model shared by
// every validator in the pipeline and the orchestrator that fuses them
// into a single fix-capable report.
package bundlevalidate

import (
	"context"
	"fmt"
	"strings"
)

// Kind is the closed set of violation kinds the pipeline can produce.
type Kind string

const (
	KindInvalidLicense   Kind = "invalid-license"
	KindNoLicense        Kind = "no-license"
	KindMultipleLicense  Kind = "multiple-license"
	KindMissingLicenses  Kind = "missing-licenses"
	KindOutdatedLicenses Kind = "outdated-licenses"
	KindMissingVersions  Kind = "missing-versions"
	KindOutdatedVersions Kind = "outdated-versions"
	KindCircularImport   Kind = "circular-import"
	KindMissingResource  Kind = "missing-resource"
)

// Fixer is a bound action owned by the producing subsystem. The
// orchestrator invokes it at most once, in report order; fixers never
// observe each other's state.
type Fixer func(ctx context.Context) error

// Violation is a single policy finding: data, never an error. It is never
// thrown during validation; it only ever surfaces through a Report.
type Violation struct {
	Kind    Kind
	Message string
	Fixable bool
	Fixer   Fixer
}

// Report is the fused result of a validation run.
type Report struct {
	Violations []Violation
	Success    bool
	Summary    string
}

// NewReport builds a Report from a violation list, computing Success and
// the multi-line Summary ("- <kind>: <message>" per line).
func NewReport(violations []Violation) Report {
	lines := make([]string, len(violations))
	for i, v := range violations {
		lines[i] = fmt.Sprintf("- %s: %s", v.Kind, v.Message)
	}
	return Report{
		Violations: violations,
		Success:    len(violations) == 0,
		Summary:    strings.Join(lines, "\n"),
	}
}

// Fix invokes every fixable violation's Fixer exactly once, in report
// order. The returned Report still lists the originally detected
// violations (fixing does not retroactively rewrite what was found) but
// its Success flag is true when every violation was fixable.
func (r Report) Fix(ctx context.Context) (Report, error) {
	allFixable := true
	for _, v := range r.Violations {
		if !v.Fixable || v.Fixer == nil {
			allFixable = false
			continue
		}
		if err := v.Fixer(ctx); err != nil {
			return r, fmt.Errorf("fix %s violation: %w", v.Kind, err)
		}
	}
	return Report{
		Violations: r.Violations,
		Success:    allFixable,
		Summary:    r.Summary,
	}, nil
}
