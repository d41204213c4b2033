// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"

	"bundleforge/pkg/bundleattr"
	"bundleforge/pkg/bundletool"
)

// proberAdapter satisfies bundleattr.Prober by translating
// bundletool.ProbeResult into bundleattr.ProbeResult. The two packages
// declare structurally identical but distinct named result types on
// purpose (bundleattr must not import the opaque tool wrapper package),
// so the pipeline is where the translation belongs.
type proberAdapter struct {
	probe *bundletool.LicenseProbe
}

func (a *proberAdapter) Probe(ctx context.Context, dir string, packageIDs []string) (map[string]bundleattr.ProbeResult, error) {
	raw, err := a.probe.Probe(ctx, dir, packageIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bundleattr.ProbeResult, len(raw))
	for id, r := range raw {
		out[id] = bundleattr.ProbeResult{
			Licenses:    r.Licenses,
			LicenseFile: r.LicenseFile,
			NoticeFile:  r.NoticeFile,
		}
	}
	return out, nil
}
