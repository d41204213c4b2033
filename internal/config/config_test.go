// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsOnlyWhenNoSidecarPresent(t *testing.T) {
	cfg, path, err := Load(LoadOptions{SearchDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.LicensesPath != "THIRD_PARTY_LICENSES" {
		t.Errorf("LicensesPath = %q, want default", cfg.LicensesPath)
	}
	if !cfg.MinifyWhitespace {
		t.Error("MinifyWhitespace default should be true")
	}
	if len(cfg.AllowedLicenses) == 0 {
		t.Error("AllowedLicenses default should be non-empty")
	}
}

func TestLoad_CUESidecarOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cue := `
entry_points: ["src/index.js"]
externals: {
	runtime: ["react"]
	optional: ["left-pad"]
}
allowed_licenses: ["mit"]
minify_whitespace: false
`
	mustWrite(t, filepath.Join(dir, SidecarCUEName), cue)

	cfg, path, err := Load(LoadOptions{SearchDir: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != filepath.Join(dir, SidecarCUEName) {
		t.Errorf("path = %q", path)
	}
	if len(cfg.EntryPoints) != 1 || cfg.EntryPoints[0] != "src/index.js" {
		t.Errorf("EntryPoints = %v", cfg.EntryPoints)
	}
	if len(cfg.Externals.Runtime) != 1 || cfg.Externals.Runtime[0] != "react" {
		t.Errorf("Externals.Runtime = %v", cfg.Externals.Runtime)
	}
	if len(cfg.AllowedLicenses) != 1 || cfg.AllowedLicenses[0] != "mit" {
		t.Errorf("AllowedLicenses = %v, want overridden to [mit]", cfg.AllowedLicenses)
	}
	if cfg.MinifyWhitespace {
		t.Error("MinifyWhitespace should be overridden to false")
	}
}

func TestLoad_TOMLSidecar(t *testing.T) {
	dir := t.TempDir()
	toml := `
licenses_path = "LICENSES.txt"
versions_file = "VERSIONS.json"
attribute_versions_separately = true

[externals]
runtime = ["lodash"]
`
	mustWrite(t, filepath.Join(dir, SidecarTOMLName), toml)

	cfg, _, err := Load(LoadOptions{SearchDir: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LicensesPath != "LICENSES.txt" {
		t.Errorf("LicensesPath = %q", cfg.LicensesPath)
	}
	if !cfg.AttributeVersionsSeparately {
		t.Error("AttributeVersionsSeparately should be true")
	}
	if len(cfg.Externals.Runtime) != 1 || cfg.Externals.Runtime[0] != "lodash" {
		t.Errorf("Externals.Runtime = %v", cfg.Externals.Runtime)
	}
}

func TestLoad_CUESchemaRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, SidecarCUEName), `totally_unknown_field: "oops"`)

	if _, _, err := Load(LoadOptions{SearchDir: dir}); err == nil {
		t.Fatal("Load() expected a schema validation error")
	}
}

func TestLoad_ExplicitConfigFilePathMissingIsError(t *testing.T) {
	if _, _, err := Load(LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue")}); err == nil {
		t.Fatal("Load() expected an error for a missing explicit config path")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}
