// SPDX-License-Identifier: EPL-2.0

package bundlepkg

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ManifestFile is the conventional npm package manifest name.
const ManifestFile = "package.json"

// Manifest is the subset of package.json fields the resolver and write
// engine need: identity and the three dependency maps. Values are semver
// ranges as declared; the resolver does not interpret them, it only uses
// the keys as names to locate on disk.
type Manifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Main                 string            `json:"main"`
	Dependencies         map[string]string `json:"dependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
}

// RuntimeDependencyNames returns the union of declared dependencies and
// optionalDependencies keys, sorted for deterministic traversal order.
func (m Manifest) RuntimeDependencyNames() []string {
	union := make(map[string]struct{}, len(m.Dependencies)+len(m.OptionalDependencies))
	for name := range m.Dependencies {
		union[name] = struct{}{}
	}
	for name := range m.OptionalDependencies {
		union[name] = struct{}{}
	}
	names := maps.Keys(union)
	slices.Sort(names)
	return names
}

// IsOptional reports whether name is declared only in optionalDependencies.
func (m Manifest) IsOptional(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return false
	}
	_, ok := m.OptionalDependencies[name]
	return ok
}

func loadManifest(dir string) (Manifest, string, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, path, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, path, err
	}
	return m, path, nil
}
