// SPDX-License-Identifier: EPL-2.0

package bundlewrite

import (
	"encoding/json"
	"os"
	"path/filepath"

	"bundleforge/pkg/bundlepkg"
)

// rewriteManifest moves every bundled dependency's manifest entry to
// devDependencies and keeps only external packages in dependencies /
// optionalDependencies. Unknown top-level package.json fields (scripts,
// author, and the like) pass through untouched.
func rewriteManifest(bundleDir string, bundled, externalRuntime, externalOptional []string) error {
	path := filepath.Join(bundleDir, bundlepkg.ManifestFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	deps := stringMap(doc["dependencies"])
	optDeps := stringMap(doc["optionalDependencies"])
	devDeps := stringMap(doc["devDependencies"])

	newDeps := map[string]any{}
	for _, name := range externalRuntime {
		if v, ok := lookup(name, deps, optDeps); ok {
			newDeps[name] = v
		}
	}
	newOptDeps := map[string]any{}
	for _, name := range externalOptional {
		if v, ok := lookup(name, deps, optDeps); ok {
			newOptDeps[name] = v
		}
	}
	for _, name := range bundled {
		if v, ok := lookup(name, deps, optDeps); ok {
			devDeps[name] = v
		}
	}

	doc["dependencies"] = newDeps
	doc["optionalDependencies"] = newOptDeps
	doc["devDependencies"] = devDeps

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func stringMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

func lookup(name string, sources ...map[string]any) (any, bool) {
	for _, s := range sources {
		if v, ok := s[name]; ok {
			return v, true
		}
	}
	return nil, false
}
