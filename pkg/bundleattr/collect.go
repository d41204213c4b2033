// SPDX-License-Identifier: EPL-2.0

package bundleattr

import (
	"context"
	"os"
	"strings"

	"bundleforge/internal/issue"
	"bundleforge/pkg/bundlepkg"
)

// Collect builds the Attribution list for the configured bundled closure:
// it filters excluded names, probes licenses once across the whole
// dependencies root, falls back to a per-package probe for anything
// missing (handling multiple major versions coexisting), and reads each
// dependency's license/notice file content.
func (e *Engine) Collect(ctx context.Context) ([]Attribution, error) {
	deps := e.filteredDependencies()

	ids := make([]string, 0, len(deps))
	for _, d := range deps {
		ids = append(ids, d.FQN())
	}

	results, err := e.prober.Probe(ctx, e.cfg.DependenciesRoot, ids)
	if err != nil {
		return nil, err
	}

	attrs := make([]Attribution, 0, len(deps))
	for _, d := range deps {
		res, ok := results[d.FQN()]
		if !ok {
			fallback, err := e.prober.Probe(ctx, d.RootDir, []string{d.FQN()})
			if err != nil {
				return nil, err
			}
			res, ok = fallback[d.FQN()]
			if !ok {
				return nil, issue.NewErrorContext().
					WithOperation("compute attributions").
					WithResource(d.FQN()).
					WithSuggestion("verify the dependency is installed and the probe tool recognizes it").
					Wrap(errAttributionFailed(d.FQN())).
					BuildError()
			}
		}
		attrs = append(attrs, e.buildAttribution(d, res))
	}

	return attrs, nil
}

// filteredDependencies returns e.cfg.Dependencies with any name matching
// the exclude regex removed. Filtering happens before both rendering and
// versioning, so an excluded dependency never appears in the document or
// the VersionsIndex.
func (e *Engine) filteredDependencies() []*bundlepkg.Package {
	if e.cfg.Exclude == nil {
		return e.cfg.Dependencies
	}
	filtered := make([]*bundlepkg.Package, 0, len(e.cfg.Dependencies))
	for _, d := range e.cfg.Dependencies {
		if e.cfg.Exclude.MatchString(d.Name) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

func (e *Engine) buildAttribution(d *bundlepkg.Package, res ProbeResult) Attribution {
	a := Attribution{
		PackageFqn: d.FQN(),
		Name:       d.Name,
		Version:    d.Version,
		Licenses:   res.Licenses,
	}

	if e.versionsExternalized() {
		a.URL = "https://www.npmjs.com/package/" + d.Name
	} else {
		a.URL = "https://www.npmjs.com/package/" + d.Name + "/v/" + d.Version
	}

	if res.LicenseFile != "" && !strings.HasSuffix(strings.ToLower(res.LicenseFile), ".md") {
		if text, err := os.ReadFile(res.LicenseFile); err == nil {
			a.LicenseText = normalizeLineEndings(string(text))
		}
	}
	if res.NoticeFile != "" {
		if text, err := os.ReadFile(res.NoticeFile); err == nil {
			a.NoticeText = normalizeLineEndings(string(text))
		}
	}

	return a
}
