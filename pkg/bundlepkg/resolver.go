// SPDX-License-Identifier: EPL-2.0

package bundlepkg

import (
	"fmt"
	"os"
	"path/filepath"

	"bundleforge/internal/issue"

	"golang.org/x/exp/slices"
)

// ErrResolutionFailed is the sentinel wrapped by resolution errors raised
// when a manifest-declared dependency cannot be located on disk.
var ErrResolutionFailed = fmt.Errorf("dependency resolution failed")

// Resolve parses the manifest at rootDir and walks the installed nested
// node_modules layout to produce the root Package with its transitive
// dependencies populated. Traversal deduplicates by absolute path so that
// diamond graphs and any installed symlink cycles terminate; a (name,
// version) pair installed at two different paths yields two distinct
// Package values, since their license metadata may differ.
func Resolve(rootDir string) (*Package, error) {
	visited := make(map[string]*Package)
	return resolveNode(rootDir, visited)
}

// Closure returns the transitive set of Packages reachable from root,
// excluding root itself, in breadth-first discovery order with no
// duplicate *Package pointers. Because resolveNode already dedups nodes by
// absolute installed path, the same pointer can appear as a dependency of
// more than one package; Closure visits it only once.
func Closure(root *Package) []*Package {
	seen := make(map[*Package]bool)
	var order []*Package

	queue := slices.Clone(root.Dependencies)
	for _, dep := range queue {
		seen[dep] = true
	}
	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		order = append(order, pkg)
		for _, dep := range pkg.Dependencies {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			queue = append(queue, dep)
		}
	}
	return order
}

func resolveNode(dir string, visited map[string]*Package) (*Package, error) {
	abs, err := absPath(dir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve dependency").
			WithResource(dir).
			Wrap(err).
			BuildError()
	}

	if existing, ok := visited[abs]; ok {
		return existing, nil
	}

	manifest, manifestPath, err := loadManifest(abs)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve dependency").
			WithResource(manifestPath).
			WithSuggestion("ensure package.json exists and is valid JSON").
			Wrap(err).
			BuildError()
	}

	pkg := &Package{
		Name:         manifest.Name,
		Version:      manifest.Version,
		RootDir:      abs,
		ManifestPath: manifestPath,
	}
	// Register before recursing into dependencies so an installed cycle
	// resolves to the in-progress node rather than looping forever.
	visited[abs] = pkg

	for _, name := range manifest.RuntimeDependencyNames() {
		depDir, found := locateInstalled(abs, name)
		if !found {
			return nil, issue.NewErrorContext().
				WithOperation("resolve dependency").
				WithResource(name).
				WithSuggestion(fmt.Sprintf("run the package manager's install step so node_modules/%s exists", name)).
				Wrap(fmt.Errorf("%w: %s not found under any node_modules ancestor of %s", ErrResolutionFailed, name, abs)).
				BuildError()
		}
		depPkg, err := resolveNode(depDir, visited)
		if err != nil {
			return nil, err
		}
		pkg.Dependencies = append(pkg.Dependencies, depPkg)
	}

	return pkg, nil
}

// locateInstalled walks upward from startDir, the same way Node's module
// resolution does, inspecting node_modules/<name> at each ancestor until
// found or the filesystem root is reached.
func locateInstalled(startDir, name string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, "node_modules", name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
