// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"bundleforge/internal/config"
	"bundleforge/internal/issue"
	"bundleforge/internal/shelltool"
	"bundleforge/pkg/bundleattr"
	"bundleforge/pkg/bundleclassify"
	"bundleforge/pkg/bundlepkg"
	"bundleforge/pkg/bundletool"
	"bundleforge/pkg/bundlevalidate"
	"bundleforge/pkg/bundlewrite"

	"github.com/charmbracelet/log"
)

// Pipeline composes the resolve -> classify -> attribute -> validate ->
// write -> pack chain into one orchestration graph, bound to one
// BundleConfig and one Invoker for the run's opaque tool calls.
type Pipeline struct {
	cfg     *config.Config
	invoker bundletool.Invoker
	logger  *log.Logger
}

// New returns a Pipeline. verbose raises the logger to Debug level, which
// additionally logs each resolved package path. Tool invocations and their
// argv are not logged.
func New(cfg *config.Config, invoker bundletool.Invoker, verbose bool) *Pipeline {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "bundleforge",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return &Pipeline{cfg: cfg, invoker: invoker, logger: logger}
}

// NewNative returns a Pipeline whose ShellAdapter runs tools as real child
// processes via internal/shelltool.ProcessInvoker.
func NewNative(cfg *config.Config, verbose bool) *Pipeline {
	return New(cfg, shelltool.NewProcessInvoker(), verbose)
}

// resolved bundles the outputs every pipeline entry point needs before it
// can branch into validate/write/pack.
type resolved struct {
	root           *bundlepkg.Package
	classification *bundleclassify.Classification
	attributions   *bundleattr.Engine
	orchestrator   *bundlevalidate.Orchestrator
}

func (p *Pipeline) resolve() (*resolved, error) {
	p.logger.Info("resolving closure", "packageDir", p.cfg.PackageDir)
	root, err := bundlepkg.Resolve(p.cfg.PackageDir)
	if err != nil {
		return nil, err
	}
	closure := bundlepkg.Closure(root)
	p.logger.Info("resolved closure", "packages", len(closure))
	if p.logger.GetLevel() == log.DebugLevel {
		for _, pkg := range closure {
			p.logger.Debug("resolved package", "fqn", pkg.FQN(), "path", pkg.RootDir)
		}
	}

	p.logger.Info("classifying dependencies")
	classification, err := bundleclassify.Classify(root, bundleclassify.ExternalsConfig{
		Runtime:  p.cfg.Externals.Runtime,
		Optional: p.cfg.Externals.Optional,
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info("classified dependencies",
		"bundled", len(classification.Bundled),
		"runtimeExternal", len(classification.RuntimeExternal),
		"optionalExternal", len(classification.OptionalExternal),
	)

	exclude, err := compileExclude(p.cfg.DontAttribute)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("compile dontAttribute pattern").
			WithResource(p.cfg.DontAttribute).
			WithSuggestion("verify dontAttribute is a valid regular expression").
			Wrap(err).
			BuildError()
	}

	probe := &proberAdapter{probe: bundletool.NewLicenseProbe(p.invoker, p.cfg.Tools.LicenseProbe)}
	attrCfg := bundleattr.Config{
		PackageDir:            p.cfg.PackageDir,
		PackageName:           root.Name,
		Dependencies:          classification.Bundled,
		DependenciesRoot:      filepath.Join(p.cfg.PackageDir, "node_modules"),
		LicensesPath:          p.cfg.LicensesPath,
		AllowedLicenses:       p.cfg.AllowedLicenses,
		Exclude:               exclude,
		LegacyVersionsSidecar: p.cfg.LegacyVersionsSidecar,
	}
	if p.cfg.AttributeVersionsSeparately {
		attrCfg.VersionsPath = p.cfg.VersionsFile
	}
	attributions := bundleattr.NewEngine(attrCfg, probe)

	circularity := bundletool.NewCircularityAnalyzer(p.invoker, p.cfg.Tools.Circularity)
	orchestrator := &bundlevalidate.Orchestrator{
		Circularity:  circularity,
		Attributions: attributions,
		PackageRoot:  p.cfg.PackageDir,
		EntryPoints:  p.cfg.EntryPoints,
		Resources:    p.cfg.Resources,
	}

	return &resolved{
		root:           root,
		classification: classification,
		attributions:   attributions,
		orchestrator:   orchestrator,
	}, nil
}

func compileExclude(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

// Validate runs the full ValidationOrchestrator and returns its Report.
func (p *Pipeline) Validate(ctx context.Context) (bundlevalidate.Report, error) {
	r, err := p.resolve()
	if err != nil {
		return bundlevalidate.Report{}, err
	}

	p.logger.Info("validating")
	report, err := r.orchestrator.Validate(ctx)
	if err != nil {
		p.logger.Error("validation failed", "error", err)
		return bundlevalidate.Report{}, err
	}
	p.logger.Info("validated", "violations", len(report.Violations), "success", report.Success)
	return report, nil
}

// ValidateAndFix runs Validate, and when the report has any violations,
// applies every fixable one and returns the post-fix report.
func (p *Pipeline) ValidateAndFix(ctx context.Context) (bundlevalidate.Report, error) {
	r, err := p.resolve()
	if err != nil {
		return bundlevalidate.Report{}, err
	}

	report, err := r.orchestrator.Validate(ctx)
	if err != nil {
		return bundlevalidate.Report{}, err
	}
	if report.Success {
		return report, nil
	}

	p.logger.Info("fixing violations", "count", len(report.Violations))
	fixed, err := report.Fix(ctx)
	if err != nil {
		p.logger.Error("fix failed", "error", err)
		return bundlevalidate.Report{}, err
	}
	return fixed, nil
}

func (p *Pipeline) writeEngine(r *resolved) *bundlewrite.WriteEngine {
	bundler := bundletool.NewBundler(p.invoker, p.cfg.Tools.Bundler)

	cfg := bundlewrite.Config{
		PackageDir:             p.cfg.PackageDir,
		PackageName:            r.root.Name,
		PackageVersion:         r.root.Version,
		EntryPoints:            p.cfg.EntryPoints,
		Externals:              externalNames(r.classification),
		MinifyWhitespace:       p.cfg.MinifyWhitespace,
		Metafile:               p.cfg.Metafile,
		Sourcemap:              p.cfg.Sourcemap,
		BundledDependencyNames: packageNames(r.classification.Bundled),
		ExternalRuntimeNames:   packageNames(r.classification.RuntimeExternal),
		ExternalOptionalNames:  packageNames(r.classification.OptionalExternal),
	}
	return bundlewrite.NewWriteEngine(cfg, bundler, r.attributions)
}

// Write materializes the bundle directory and, when a smoke-test command
// is configured, runs it inside that directory before returning.
func (p *Pipeline) Write(ctx context.Context) (string, error) {
	r, err := p.resolve()
	if err != nil {
		return "", err
	}

	p.logger.Info("writing bundle")
	bundleDir, err := p.writeEngine(r).Write(ctx)
	if err != nil {
		p.logger.Error("write failed", "error", err)
		return "", err
	}
	p.logger.Info("wrote bundle", "dir", bundleDir)

	if p.cfg.Test != "" {
		p.logger.Info("running smoke test", "dir", bundleDir)
		result, err := shelltool.RunSmokeTest(ctx, bundleDir, p.cfg.Test)
		if err != nil {
			return "", err
		}
		if result.ExitCode != 0 {
			return "", issue.NewErrorContext().
				WithOperation("run smoke test").
				WithResource(bundleDir).
				WithSuggestion("inspect the bundle's stdout/stderr above and fix the failing command").
				Wrap(fmt.Errorf("smoke test exited with status %d: %s", result.ExitCode, result.Stderr)).
				BuildError()
		}
		p.logger.Info("smoke test passed")
	}

	return bundleDir, nil
}

// Pack runs Write and then invokes the packing tool, defaulting destDir to
// the original package directory when empty.
func (p *Pipeline) Pack(ctx context.Context, destDir string) (string, error) {
	r, err := p.resolve()
	if err != nil {
		return "", err
	}

	packer := bundletool.NewPacker(p.invoker, p.cfg.Tools.Packer)
	packEngine := bundlewrite.NewPackEngine(p.writeEngine(r), packer)

	p.logger.Info("packing")
	tarball, err := packEngine.Pack(ctx, destDir)
	if err != nil {
		p.logger.Error("pack failed", "error", err)
		return "", err
	}
	p.logger.Info("packed", "tarball", tarball)
	return tarball, nil
}

// Preview computes the canonical AttributionsDocument without writing
// anything to disk, for "validate --preview" to render.
func (p *Pipeline) Preview(ctx context.Context) (string, error) {
	r, err := p.resolve()
	if err != nil {
		return "", err
	}
	attrs, err := r.attributions.Collect(ctx)
	if err != nil {
		return "", err
	}
	document, _, _ := bundleattr.Render(r.root.Name, attrs, p.cfg.AttributeVersionsSeparately)
	return document, nil
}

func externalNames(c *bundleclassify.Classification) []string {
	names := make([]string, 0, len(c.RuntimeExternal)+len(c.OptionalExternal))
	names = append(names, packageNames(c.RuntimeExternal)...)
	names = append(names, packageNames(c.OptionalExternal)...)
	return names
}

func packageNames(pkgs []*bundlepkg.Package) []string {
	names := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		names[i] = pkg.Name
	}
	return names
}
