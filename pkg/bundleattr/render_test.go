// SPDX-License-Identifier: EPL-2.0

package bundleattr

import (
	"strings"
	"testing"
)

func TestRender_EmptyClosure(t *testing.T) {
	doc, order, versions := Render("consumer", nil, false)
	if doc != "" {
		t.Errorf("document = %q, want empty", doc)
	}
	if len(order) != 0 || len(versions) != 0 {
		t.Errorf("order/versions should be empty, got %v %v", order, versions)
	}
}

func TestRender_SortInvariant(t *testing.T) {
	attrs := []Attribution{
		{PackageFqn: "zeta@1.0.0", Name: "zeta", Version: "1.0.0", URL: "u", Licenses: []string{"MIT"}},
		{PackageFqn: "alpha@1.0.0", Name: "alpha", Version: "1.0.0", URL: "u", Licenses: []string{"MIT"}},
	}
	doc, _, _ := Render("consumer", attrs, false)

	alphaIdx := strings.Index(doc, "alpha@1.0.0")
	zetaIdx := strings.Index(doc, "zeta@1.0.0")
	if alphaIdx == -1 || zetaIdx == -1 || alphaIdx > zetaIdx {
		t.Errorf("attribution blocks must appear in ascending packageFqn order, got doc:\n%s", doc)
	}
}

func TestRender_TitleOmitsVersionWhenExternalized(t *testing.T) {
	attrs := []Attribution{{PackageFqn: "dep1@1.0.0", Name: "dep1", Version: "1.0.0", URL: "u", Licenses: []string{"MIT"}}}

	embedded, _, _ := Render("consumer", attrs, false)
	if !strings.Contains(embedded, "** dep1@1.0.0 - ") {
		t.Errorf("embedded title should include version, got:\n%s", embedded)
	}

	externalized, _, _ := Render("consumer", attrs, true)
	if !strings.Contains(externalized, "** dep1 - ") {
		t.Errorf("externalized title should omit version, got:\n%s", externalized)
	}
	if strings.Contains(externalized, "** dep1@1.0.0") {
		t.Errorf("externalized title should not embed version, got:\n%s", externalized)
	}
}

func TestRender_BodyPrefersNoticeOverLicense(t *testing.T) {
	attrs := []Attribution{{
		PackageFqn: "dep1@1.0.0", Name: "dep1", Version: "1.0.0", URL: "u",
		Licenses: []string{"MIT"}, LicenseText: "license body", NoticeText: "notice body",
	}}
	doc, _, _ := Render("consumer", attrs, false)
	if !strings.Contains(doc, "notice body") {
		t.Error("document should contain the notice text")
	}
	if strings.Contains(doc, "license body") {
		t.Error("document should not contain the license text when a notice is present")
	}
}

func TestRender_VersionsIndexPreservesOrderOfFirstAppearance(t *testing.T) {
	attrs := []Attribution{
		{PackageFqn: "b@2.0.0", Name: "b", Version: "2.0.0"},
		{PackageFqn: "a@1.0.0", Name: "a", Version: "1.0.0"},
		{PackageFqn: "b@1.0.0", Name: "b", Version: "1.0.0"},
	}
	_, order, versions := Render("consumer", attrs, false)

	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Errorf("order = %v, want [b a] (first-appearance order)", order)
	}
	if got := versions["b"]; len(got) != 2 || got[0] != "2.0.0" || got[1] != "1.0.0" {
		t.Errorf("versions[b] = %v, want [2.0.0 1.0.0]", got)
	}
}

func TestMarshalVersionsIndex_PreservesInsertionOrder(t *testing.T) {
	data, err := marshalVersionsIndex([]string{"zeta", "alpha"}, map[string][]string{
		"zeta":  {"1.0.0"},
		"alpha": {"2.0.0", "2.0.1"},
	})
	if err != nil {
		t.Fatalf("marshalVersionsIndex() error = %v", err)
	}
	want := "{\n  \"zeta\": [\"1.0.0\"],\n  \"alpha\": [\"2.0.0\",\"2.0.1\"]\n}"
	if string(data) != want {
		t.Errorf("marshalVersionsIndex() =\n%s\nwant\n%s", data, want)
	}
}

func TestMarshalVersionsIndex_Empty(t *testing.T) {
	data, err := marshalVersionsIndex(nil, map[string][]string{})
	if err != nil {
		t.Fatalf("marshalVersionsIndex() error = %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("marshalVersionsIndex() = %q, want {}", data)
	}
}
