// SPDX-License-Identifier: EPL-2.0

package bundleattr

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"bundleforge/pkg/bundlepkg"
)

type fakeProber struct {
	byDir map[string]map[string]ProbeResult
}

func (f *fakeProber) Probe(_ context.Context, dir string, packageIDs []string) (map[string]ProbeResult, error) {
	known := f.byDir[dir]
	out := make(map[string]ProbeResult)
	for _, id := range packageIDs {
		if res, ok := known[id]; ok {
			out[id] = res
		}
	}
	return out, nil
}

func TestCollect_FallsBackToPerPackageProbe(t *testing.T) {
	dep := &bundlepkg.Package{Name: "dep1", Version: "1.0.0", RootDir: "/deps/dep1"}
	prober := &fakeProber{byDir: map[string]map[string]ProbeResult{
		"/deps/dep1": {"dep1@1.0.0": {Licenses: []string{"MIT"}}},
	}}
	e := NewEngine(Config{
		PackageName:      "consumer",
		Dependencies:     []*bundlepkg.Package{dep},
		DependenciesRoot: "/deps",
	}, prober)

	attrs, err := e.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(attrs) != 1 || attrs[0].Licenses[0] != "MIT" {
		t.Errorf("attrs = %v, want fallback-probed MIT", attrs)
	}
}

func TestCollect_StillMissingFails(t *testing.T) {
	dep := &bundlepkg.Package{Name: "ghost", Version: "1.0.0", RootDir: "/deps/ghost"}
	prober := &fakeProber{byDir: map[string]map[string]ProbeResult{}}
	e := NewEngine(Config{Dependencies: []*bundlepkg.Package{dep}, DependenciesRoot: "/deps"}, prober)

	if _, err := e.Collect(context.Background()); err == nil {
		t.Fatal("Collect() expected an error when the probe cannot locate a dependency anywhere")
	}
}

func TestCollect_ExcludeFiltersBeforeProbing(t *testing.T) {
	kept := &bundlepkg.Package{Name: "kept", Version: "1.0.0", RootDir: "/deps/kept"}
	excluded := &bundlepkg.Package{Name: "internal-tool", Version: "1.0.0", RootDir: "/deps/internal-tool"}
	prober := &fakeProber{byDir: map[string]map[string]ProbeResult{
		"/deps": {"kept@1.0.0": {Licenses: []string{"MIT"}}},
	}}
	e := NewEngine(Config{
		Dependencies:     []*bundlepkg.Package{kept, excluded},
		DependenciesRoot: "/deps",
		Exclude:          regexp.MustCompile(`^internal-`),
	}, prober)

	attrs, err := e.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(attrs) != 1 || attrs[0].Name != "kept" {
		t.Errorf("attrs = %v, want only [kept]", attrs)
	}
}

func TestCollect_URLVariesWithVersionsExternalized(t *testing.T) {
	dep := &bundlepkg.Package{Name: "dep1", Version: "1.0.0", RootDir: "/deps/dep1"}
	prober := &fakeProber{byDir: map[string]map[string]ProbeResult{
		"/deps": {"dep1@1.0.0": {Licenses: []string{"MIT"}}},
	}}

	embedded := NewEngine(Config{Dependencies: []*bundlepkg.Package{dep}, DependenciesRoot: "/deps"}, prober)
	attrs, _ := embedded.Collect(context.Background())
	if attrs[0].URL != "https://www.npmjs.com/package/dep1/v/1.0.0" {
		t.Errorf("URL = %q", attrs[0].URL)
	}

	externalized := NewEngine(Config{
		Dependencies: []*bundlepkg.Package{dep}, DependenciesRoot: "/deps", VersionsPath: "/out/VERSIONS",
	}, prober)
	attrs, _ = externalized.Collect(context.Background())
	if attrs[0].URL != "https://www.npmjs.com/package/dep1" {
		t.Errorf("URL = %q", attrs[0].URL)
	}
}

func TestCollect_DiscardsMarkdownLicenseFile(t *testing.T) {
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "LICENSE.md")
	if err := os.WriteFile(mdPath, []byte("unreliable"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	dep := &bundlepkg.Package{Name: "dep1", Version: "1.0.0", RootDir: "/deps/dep1"}
	prober := &fakeProber{byDir: map[string]map[string]ProbeResult{
		"/deps": {"dep1@1.0.0": {Licenses: []string{"MIT"}, LicenseFile: mdPath}},
	}}
	e := NewEngine(Config{Dependencies: []*bundlepkg.Package{dep}, DependenciesRoot: "/deps"}, prober)

	attrs, err := e.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if attrs[0].LicenseText != "" {
		t.Errorf("LicenseText = %q, want empty (a .md license file is discarded as unreliable)", attrs[0].LicenseText)
	}
}

func TestCollect_NormalizesCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LICENSE")
	if err := os.WriteFile(path, []byte("line1\r\nline2\r\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	dep := &bundlepkg.Package{Name: "dep1", Version: "1.0.0", RootDir: "/deps/dep1"}
	prober := &fakeProber{byDir: map[string]map[string]ProbeResult{
		"/deps": {"dep1@1.0.0": {Licenses: []string{"MIT"}, LicenseFile: path}},
	}}
	e := NewEngine(Config{Dependencies: []*bundlepkg.Package{dep}, DependenciesRoot: "/deps"}, prober)

	attrs, err := e.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if attrs[0].LicenseText != "line1\nline2\n" {
		t.Errorf("LicenseText = %q, want CRLF normalized to LF", attrs[0].LicenseText)
	}
}
