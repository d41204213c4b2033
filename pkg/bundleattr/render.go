// SPDX-License-Identifier: EPL-2.0

package bundleattr

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Render derives the canonical AttributionsDocument and the VersionsIndex
// from attrs. The document is empty (and the index has no entries) when
// attrs is empty. Attribution blocks are emitted in ascending packageFqn
// order; the VersionsIndex records each name's versions in the order they
// first appear in attrs (the caller's closure traversal order), not
// sorted, since a stable upstream order is the documented contract.
func Render(packageName string, attrs []Attribution, versionsExternalized bool) (document string, versionOrder []string, versions map[string][]string) {
	versions = map[string][]string{}
	for _, a := range attrs {
		if _, ok := versions[a.Name]; !ok {
			versionOrder = append(versionOrder, a.Name)
		}
		versions[a.Name] = append(versions[a.Name], a.Version)
	}

	if len(attrs) == 0 {
		return "", versionOrder, versions
	}

	sorted := slices.Clone(attrs)
	slices.SortFunc(sorted, func(a, b Attribution) int { return strings.Compare(a.PackageFqn, b.PackageFqn) })

	var doc strings.Builder
	fmt.Fprintf(&doc, "The %s package includes the following third-party software/licensing:\n\n", packageName)

	blocks := make([]string, len(sorted))
	for i, a := range sorted {
		blocks[i] = renderBlock(a, versionsExternalized)
	}
	doc.WriteString(strings.Join(blocks, "\n"))

	return doc.String(), versionOrder, versions
}

func renderBlock(a Attribution, versionsExternalized bool) string {
	title := a.PackageFqn
	if versionsExternalized {
		title = a.Name
	}

	firstLicense := ""
	if len(a.Licenses) > 0 {
		firstLicense = a.Licenses[0]
	}

	var block strings.Builder
	fmt.Fprintf(&block, "** %s - %s | %s", title, a.URL, firstLicense)

	body := a.NoticeText
	if body == "" {
		body = a.LicenseText
	}
	if body != "" {
		block.WriteString("\n")
		block.WriteString(body)
	}
	block.WriteString("\n----------------\n")

	return block.String()
}
