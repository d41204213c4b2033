// SPDX-License-Identifier: EPL-2.0

package bundlevalidate

import "context"

// CircularityAnalyzer is the subset of bundletool.CircularityAnalyzer the
// orchestrator depends on; declared here so this package never imports the
// opaque tool wrappers, only the shape it needs from them.
type CircularityAnalyzer interface {
	Analyze(ctx context.Context, packageRoot string, entryPoints []string) ([]string, error)
}

// AttributionsValidator is the subset of bundleattr.Engine the orchestrator
// depends on.
type AttributionsValidator interface {
	Validate(ctx context.Context) ([]Violation, error)
}

// Orchestrator composes the three validators named in the pipeline design
// into a single fix-capable Report: circularity analysis, resource
// resolution, and attribution/license validation, in that order.
type Orchestrator struct {
	Circularity  CircularityAnalyzer
	Attributions AttributionsValidator
	PackageRoot  string
	EntryPoints  []string
	Resources    map[string]string
}

// Validate runs all three validators and fuses their findings into one
// Report. A CircularityAnalyzer or AttributionsValidator failure is a hard
// failure (propagated, not folded into the report); resource resolution
// never fails the call, only contributes violations.
func (o *Orchestrator) Validate(ctx context.Context) (Report, error) {
	var violations []Violation

	cycles, err := o.Circularity.Analyze(ctx, o.PackageRoot, o.EntryPoints)
	if err != nil {
		return Report{}, err
	}
	for _, cycle := range cycles {
		violations = append(violations, Violation{Kind: KindCircularImport, Message: cycle})
	}

	violations = append(violations, ResolveResources(o.PackageRoot, o.Resources)...)

	attrViolations, err := o.Attributions.Validate(ctx)
	if err != nil {
		return Report{}, err
	}
	violations = append(violations, attrViolations...)

	return NewReport(violations), nil
}
