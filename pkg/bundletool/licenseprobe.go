// SPDX-License-Identifier: EPL-2.0

package bundletool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ProbeResult is one entry of the license probe's response: the declared
// license(s) for a package plus the on-disk paths to its license and
// notice files, if any were found.
type ProbeResult struct {
	Licenses    []string
	LicenseFile string
	NoticeFile  string
}

// rawProbeResult mirrors the probe tool's JSON shape before normalization.
// The probe reports "licenses" as either a bare string or an array of
// strings depending on how many the package declares; dynamicLicenses
// absorbs that ambiguity at the ingress boundary.
type rawProbeResult struct {
	Licenses    dynamicLicenses `json:"licenses"`
	LicenseFile string          `json:"licenseFile"`
	NoticeFile  string          `json:"noticeFile"`
}

type dynamicLicenses []string

func (d *dynamicLicenses) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*d = nil
		} else {
			*d = dynamicLicenses{single}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*d = dynamicLicenses(list)
	return nil
}

// LicenseProbe invokes the configured license-metadata probe tool, which
// accepts "--json --packages a@1;b@2" and emits a JSON object keyed by
// package identifier.
type LicenseProbe struct {
	Invoker Invoker
	Command string
}

// NewLicenseProbe returns a LicenseProbe that runs command through invoker.
func NewLicenseProbe(invoker Invoker, command string) *LicenseProbe {
	return &LicenseProbe{Invoker: invoker, Command: command}
}

// Probe runs the probe tool in dir for the given package identifiers
// ("name@version") and returns a map keyed by identifier. Identifiers the
// probe did not report are simply absent from the result; callers decide
// whether that constitutes a failure.
func (p *LicenseProbe) Probe(ctx context.Context, dir string, packageIDs []string) (map[string]ProbeResult, error) {
	if len(packageIDs) == 0 {
		return map[string]ProbeResult{}, nil
	}

	args := []string{"--json", "--packages", strings.Join(packageIDs, ";")}
	out, err := p.Invoker.Run(ctx, dir, p.Command, args)
	if err != nil {
		return nil, &ToolFailureError{Tool: p.Command, Args: args, Cause: err}
	}

	var raw map[string]rawProbeResult
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, &ToolFailureError{Tool: p.Command, Args: args, Cause: fmt.Errorf("decode probe output: %w", err)}
	}

	results := make(map[string]ProbeResult, len(raw))
	for id, r := range raw {
		results[id] = ProbeResult{
			Licenses:    []string(r.Licenses),
			LicenseFile: r.LicenseFile,
			NoticeFile:  r.NoticeFile,
		}
	}
	return results, nil
}
