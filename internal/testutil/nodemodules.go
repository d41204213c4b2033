// SPDX-License-Identifier: EPL-2.0

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// ManifestSpec describes one package.json to materialize under a synthetic
// node_modules tree: its own identity plus the dependency names (by version
// range) it declares.
type ManifestSpec struct {
	Name                 string
	Version              string
	Dependencies         map[string]string
	OptionalDependencies map[string]string
	DevDependencies      map[string]string
	Files                map[string]string
}

// NodeModulesTree builds a throwaway package root on disk: a package.json
// for root, plus one installed copy under node_modules/<name> per entry in
// installed (keyed by the exact relative node_modules path so callers can
// place the same package at multiple nesting levels to exercise diamond and
// nested-lookup resolution).
func NodeModulesTree(t testing.TB, root ManifestSpec, installed map[string]ManifestSpec) string {
	t.Helper()

	dir := t.TempDir()
	writeManifest(t, dir, root)
	writeFiles(t, dir, root.Files)

	for relPath, spec := range installed {
		pkgDir := filepath.Join(dir, filepath.FromSlash(relPath))
		MustMkdirAll(t, pkgDir, 0o755)
		writeManifest(t, pkgDir, spec)
		writeFiles(t, pkgDir, spec.Files)
	}

	return dir
}

func writeManifest(t testing.TB, dir string, spec ManifestSpec) {
	t.Helper()

	MustMkdirAll(t, dir, 0o755)

	doc := map[string]any{
		"name":    spec.Name,
		"version": spec.Version,
	}
	if len(spec.Dependencies) > 0 {
		doc["dependencies"] = spec.Dependencies
	}
	if len(spec.OptionalDependencies) > 0 {
		doc["optionalDependencies"] = spec.OptionalDependencies
	}
	if len(spec.DevDependencies) > 0 {
		doc["devDependencies"] = spec.DevDependencies
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal package.json for %s: %v", spec.Name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), data, 0o644); err != nil {
		t.Fatalf("failed to write package.json for %s: %v", spec.Name, err)
	}
}

func writeFiles(t testing.TB, dir string, files map[string]string) {
	t.Helper()

	for relPath, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(relPath))
		MustMkdirAll(t, filepath.Dir(full), 0o755)
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", relPath, err)
		}
	}
}
