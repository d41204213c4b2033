// SPDX-License-Identifier: EPL-2.0

// Package bundlepkg resolves a package's transitive dependency closure by
// walking the nested node_modules layout installed on disk.
package bundlepkg

import (
	"path/filepath"
)

// Package is one node in a resolved dependency tree: a manifest-declared
// identity plus the resolved dependencies reachable from it. Identity is
// (Name, Version, RootDir); two Packages with the same Name and Version
// installed at different paths are intentionally distinct values, since
// their license metadata may differ.
type Package struct {
	Name         string
	Version      string
	RootDir      string
	ManifestPath string
	Dependencies []*Package
}

// FQN returns the canonical "name@version" identity string used throughout
// attributions and versions indexing.
func (p *Package) FQN() string {
	return p.Name + "@" + p.Version
}

func absPath(dir string) (string, error) {
	return filepath.Abs(dir)
}
