// SPDX-License-Identifier: EPL-2.0

// Package bundleclassify splits a resolved dependency closure into bundled
// and externalized partitions according to an ExternalsConfig.
package bundleclassify

import (
	"fmt"

	"bundleforge/internal/issue"
	"bundleforge/pkg/bundlepkg"

	"golang.org/x/exp/slices"
)

// ExternalsConfig names dependencies that must not be inlined into the
// bundle. The two sets are invariantly disjoint; a name present in both is
// an InvalidConfig failure, never a silent precedence rule.
type ExternalsConfig struct {
	Runtime  []string
	Optional []string
}

// Classification partitions a closure into the three sets a bundler and an
// attributions engine need: Bundled packages are inlined and attributed;
// RuntimeExternal and OptionalExternal packages are left as declared
// dependencies of the output package.json and are never attributed, along
// with their own transitive dependencies.
type Classification struct {
	Bundled          []*bundlepkg.Package
	RuntimeExternal  []*bundlepkg.Package
	OptionalExternal []*bundlepkg.Package
}

// ErrInvalidConfig is the sentinel wrapped when a name appears in both the
// runtime and optional externals sets.
var ErrInvalidConfig = fmt.Errorf("invalid externals configuration")

// Classify performs a breadth-first traversal from root's dependencies,
// stopping descent at any node whose name is in either externals set: that
// node is placed in the matching partition and its own dependencies are
// never visited, so they are excluded from bundling and from attribution.
// All other visited nodes become bundled.
func Classify(root *bundlepkg.Package, cfg ExternalsConfig) (*Classification, error) {
	runtimeSet := toSet(cfg.Runtime)
	optionalSet := toSet(cfg.Optional)
	for name := range runtimeSet {
		if optionalSet[name] {
			return nil, issue.NewErrorContext().
				WithOperation("classify dependencies").
				WithResource(name).
				WithSuggestion("remove the name from either externals.runtime or externals.optional").
				Wrap(fmt.Errorf("%w: %q listed in both runtime and optional externals", ErrInvalidConfig, name)).
				BuildError()
		}
	}

	result := &Classification{}
	seen := make(map[*bundlepkg.Package]bool)
	queue := slices.Clone(root.Dependencies)
	for _, pkg := range queue {
		seen[pkg] = true
	}

	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]

		switch {
		case runtimeSet[pkg.Name]:
			result.RuntimeExternal = append(result.RuntimeExternal, pkg)
		case optionalSet[pkg.Name]:
			result.OptionalExternal = append(result.OptionalExternal, pkg)
		default:
			result.Bundled = append(result.Bundled, pkg)
			for _, dep := range pkg.Dependencies {
				if seen[dep] {
					continue
				}
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	return result, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
