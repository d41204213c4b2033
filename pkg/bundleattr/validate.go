// SPDX-License-Identifier: EPL-2.0

package bundleattr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"bundleforge/pkg/bundlevalidate"
)

// Validate produces violations for license-allow-list failures plus
// document/index staleness, comparing the freshly computed canonical
// rendering against what is currently on disk. The four staleness kinds
// (missing/outdated licenses and versions) are fixable via Flush.
func (e *Engine) Validate(ctx context.Context) ([]bundlevalidate.Violation, error) {
	attrs, err := e.Collect(ctx)
	if err != nil {
		return nil, err
	}

	var violations []bundlevalidate.Violation
	violations = append(violations, licenseViolations(attrs, e.allowedSet())...)

	document, versionOrder, versions := Render(e.cfg.PackageName, attrs, e.versionsExternalized())

	licenseViol, err := e.compareLicensesFile(document)
	if err != nil {
		return nil, err
	}
	violations = append(violations, licenseViol...)

	if e.cfg.VersionsPath != "" {
		versionsViol, err := e.compareVersionsFile(versionOrder, versions)
		if err != nil {
			return nil, err
		}
		violations = append(violations, versionsViol...)
	}

	return violations, nil
}

func licenseViolations(attrs []Attribution, allowed map[string]bool) []bundlevalidate.Violation {
	var violations []bundlevalidate.Violation
	for _, a := range attrs {
		switch len(a.Licenses) {
		case 0:
			violations = append(violations, bundlevalidate.Violation{
				Kind:    bundlevalidate.KindNoLicense,
				Message: fmt.Sprintf("Dependency %s has no license", a.PackageFqn),
			})
		case 1:
			if !allowed[strings.ToLower(a.Licenses[0])] {
				violations = append(violations, bundlevalidate.Violation{
					Kind:    bundlevalidate.KindInvalidLicense,
					Message: fmt.Sprintf("Dependency %s has an invalid license: %s", a.PackageFqn, a.Licenses[0]),
				})
			}
		default:
			violations = append(violations, bundlevalidate.Violation{
				Kind:    bundlevalidate.KindMultipleLicense,
				Message: fmt.Sprintf("Dependency %s has multiple licenses: %s", a.PackageFqn, strings.Join(a.Licenses, ",")),
			})
		}
	}
	return violations
}

func (e *Engine) allowedSet() map[string]bool {
	set := make(map[string]bool, len(e.cfg.AllowedLicenses))
	for _, l := range e.cfg.AllowedLicenses {
		set[strings.ToLower(l)] = true
	}
	return set
}

func (e *Engine) compareLicensesFile(document string) ([]bundlevalidate.Violation, error) {
	existing, err := os.ReadFile(e.cfg.LicensesPath)
	if errors.Is(err, os.ErrNotExist) {
		return []bundlevalidate.Violation{{
			Kind:    bundlevalidate.KindMissingLicenses,
			Message: fmt.Sprintf("%s is missing", e.cfg.LicensesPath),
			Fixable: true,
			Fixer:   e.flushLicensesFixer(),
		}}, nil
	}
	if err != nil {
		return nil, err
	}
	if string(existing) != document {
		return []bundlevalidate.Violation{{
			Kind:    bundlevalidate.KindOutdatedLicenses,
			Message: fmt.Sprintf("%s is outdated", e.cfg.LicensesPath),
			Fixable: true,
			Fixer:   e.flushLicensesFixer(),
		}}, nil
	}
	return nil, nil
}

func (e *Engine) compareVersionsFile(order []string, versions map[string][]string) ([]bundlevalidate.Violation, error) {
	canonical, err := marshalVersionsIndex(order, versions)
	if err != nil {
		return nil, err
	}

	existing, err := os.ReadFile(e.cfg.VersionsPath)
	if errors.Is(err, os.ErrNotExist) {
		return []bundlevalidate.Violation{{
			Kind:    bundlevalidate.KindMissingVersions,
			Message: fmt.Sprintf("%s is missing", e.cfg.VersionsPath),
			Fixable: true,
			Fixer:   e.flushVersionsFixer(),
		}}, nil
	}
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(existing, canonical) {
		return []bundlevalidate.Violation{{
			Kind:    bundlevalidate.KindOutdatedVersions,
			Message: fmt.Sprintf("%s is outdated", e.cfg.VersionsPath),
			Fixable: true,
			Fixer:   e.flushVersionsFixer(),
		}}, nil
	}
	return nil, nil
}
