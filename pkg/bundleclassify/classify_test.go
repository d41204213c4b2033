// SPDX-License-Identifier: EPL-2.0

package bundleclassify

import (
	"testing"

	"bundleforge/pkg/bundlepkg"
)

func mustPkg(name, version string, deps ...*bundlepkg.Package) *bundlepkg.Package {
	return &bundlepkg.Package{Name: name, Version: version, Dependencies: deps}
}

func TestClassify_StopsDescentAtExternal(t *testing.T) {
	// consumer -> external-dep -> hidden-transitive
	//          -> bundled-dep
	hidden := mustPkg("hidden-transitive", "1.0.0")
	external := mustPkg("external-dep", "2.0.0", hidden)
	bundled := mustPkg("bundled-dep", "3.0.0")
	root := mustPkg("consumer", "0.0.0", external, bundled)

	result, err := Classify(root, ExternalsConfig{Runtime: []string{"external-dep"}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if len(result.RuntimeExternal) != 1 || result.RuntimeExternal[0] != external {
		t.Errorf("RuntimeExternal = %v, want [external-dep]", result.RuntimeExternal)
	}
	if len(result.Bundled) != 1 || result.Bundled[0] != bundled {
		t.Errorf("Bundled = %v, want [bundled-dep]", result.Bundled)
	}
	for _, pkg := range result.Bundled {
		if pkg == hidden {
			t.Error("hidden-transitive must not be bundled: it is only reachable through an external")
		}
	}
}

func TestClassify_OptionalPartition(t *testing.T) {
	opt := mustPkg("opt-dep", "1.0.0")
	root := mustPkg("consumer", "0.0.0", opt)

	result, err := Classify(root, ExternalsConfig{Optional: []string{"opt-dep"}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(result.OptionalExternal) != 1 || result.OptionalExternal[0] != opt {
		t.Errorf("OptionalExternal = %v, want [opt-dep]", result.OptionalExternal)
	}
}

func TestClassify_NameInBothSetsFails(t *testing.T) {
	root := mustPkg("consumer", "0.0.0")

	_, err := Classify(root, ExternalsConfig{
		Runtime:  []string{"dual"},
		Optional: []string{"dual"},
	})
	if err == nil {
		t.Fatal("Classify() expected an error when a name appears in both externals sets")
	}
}

func TestClassify_DiamondVisitedOnce(t *testing.T) {
	shared := mustPkg("shared", "1.0.0")
	dep1 := mustPkg("dep1", "1.0.0", shared)
	dep2 := mustPkg("dep2", "1.0.0", shared)
	root := mustPkg("consumer", "0.0.0", dep1, dep2)

	result, err := Classify(root, ExternalsConfig{})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(result.Bundled) != 3 {
		t.Fatalf("Bundled length = %d, want 3 (dep1, dep2, shared once)", len(result.Bundled))
	}
}
