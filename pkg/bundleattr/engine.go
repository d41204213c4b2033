// SPDX-License-Identifier: EPL-2.0

// Package bundleattr computes a deterministic, canonical third-party
// attributions document and versions index for a bundled dependency
// closure, compares them against on-disk state, and flushes corrections.
package bundleattr

import (
	"context"
	"regexp"
	"strings"

	"bundleforge/pkg/bundlepkg"
)

// Attribution is one dependency's identity, licensing metadata, and
// embeddable text.
type Attribution struct {
	PackageFqn  string
	Name        string
	Version     string
	URL         string
	Licenses    []string
	LicenseText string
	NoticeText  string
}

// ProbeResult is the normalized shape this package needs from a license
// probe: always a list of licenses, plus optional file paths to read.
type ProbeResult struct {
	Licenses    []string
	LicenseFile string
	NoticeFile  string
}

// Prober is the capability Engine needs from a license-metadata probe. It
// is declared here, not imported from bundletool, so this package can be
// exercised with an in-memory fake with no dependency on the opaque tool
// wrapper or a real process.
type Prober interface {
	Probe(ctx context.Context, dir string, packageIDs []string) (map[string]ProbeResult, error)
}

// Config are the immutable inputs for one AttributionsEngine run.
type Config struct {
	PackageDir       string
	PackageName      string
	Dependencies     []*bundlepkg.Package // the bundled closure
	DependenciesRoot string
	LicensesPath     string
	AllowedLicenses  []string // lowercase
	Exclude          *regexp.Regexp
	VersionsPath     string

	// LegacyVersionsSidecar makes Flush write "<LicensesPath>.versions.json"
	// unconditionally when VersionsPath is unset. Unset, Flush writes no
	// sidecar at all and versions live only in the document's titles. The
	// source disagrees with itself on which is the default; this field
	// makes the choice an explicit config decision rather than an inferred
	// one.
	LegacyVersionsSidecar bool
}

// Engine is the AttributionsEngine: the heart of the pipeline.
type Engine struct {
	cfg    Config
	prober Prober
}

// NewEngine returns an Engine that probes licenses through prober.
func NewEngine(cfg Config, prober Prober) *Engine {
	return &Engine{cfg: cfg, prober: prober}
}

// versionsExternalized reports whether the VersionsIndex is written to a
// separate file. When it is, attribution block titles omit the version
// (title = name); otherwise the title embeds it (title = packageFqn).
func (e *Engine) versionsExternalized() bool {
	return e.cfg.VersionsPath != ""
}

func normalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
