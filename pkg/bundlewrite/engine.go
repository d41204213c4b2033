// SPDX-License-Identifier: EPL-2.0

package bundlewrite

import (
	"context"
	"fmt"
	"os"

	"bundleforge/pkg/bundletool"
)

// Bundler is the capability WriteEngine needs from the JS bundler, declared
// locally so this package is exercisable with an in-memory fake.
type Bundler interface {
	Bundle(ctx context.Context, req bundletool.BundleRequest) (bundletool.BundleResult, error)
}

// AttributionsFlusher is the capability WriteEngine needs to materialize
// attributions inside the freshly written bundle directory.
type AttributionsFlusher interface {
	FlushTo(ctx context.Context, dir string) error
}

// Config are a single write's immutable inputs.
type Config struct {
	PackageDir     string
	PackageName    string
	PackageVersion string

	EntryPoints      []string
	Externals        []string
	MinifyWhitespace bool
	Metafile         string
	Sourcemap        bool

	// BundledDependencyNames move to devDependencies in the rewritten
	// manifest; ExternalRuntimeNames/ExternalOptionalNames are kept as the
	// only entries in dependencies/optionalDependencies respectively.
	BundledDependencyNames []string
	ExternalRuntimeNames   []string
	ExternalOptionalNames  []string
}

// WriteEngine materializes a bundle directory: the package tree overlaid
// with bundler output, a rewritten manifest, and flushed attributions.
type WriteEngine struct {
	cfg          Config
	bundler      Bundler
	attributions AttributionsFlusher
}

// NewWriteEngine returns a WriteEngine bound to bundler and attributions.
func NewWriteEngine(cfg Config, bundler Bundler, attributions AttributionsFlusher) *WriteEngine {
	return &WriteEngine{cfg: cfg, bundler: bundler, attributions: attributions}
}

// Write copies the package tree into a fresh temp directory, overlays the
// bundler's output, rewrites package.json, flushes attributions, and
// returns the bundle directory's path. The directory is not removed on
// success; callers may inspect it.
func (w *WriteEngine) Write(ctx context.Context) (string, error) {
	pattern := fmt.Sprintf("%s-%s-*", w.cfg.PackageName, w.cfg.PackageVersion)
	bundleDir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", err
	}

	if err := copyPackageTree(w.cfg.PackageDir, bundleDir); err != nil {
		return "", err
	}

	result, err := w.bundler.Bundle(ctx, bundletool.BundleRequest{
		PackageDir:       w.cfg.PackageDir,
		EntryPoints:      w.cfg.EntryPoints,
		Externals:        w.cfg.Externals,
		MinifyWhitespace: w.cfg.MinifyWhitespace,
		Metafile:         w.cfg.Metafile,
		Sourcemap:        w.cfg.Sourcemap,
	})
	if err != nil {
		return "", err
	}
	if err := overlayFiles(result.OutputDir, bundleDir); err != nil {
		return "", err
	}

	if err := rewriteManifest(bundleDir, w.cfg.BundledDependencyNames, w.cfg.ExternalRuntimeNames, w.cfg.ExternalOptionalNames); err != nil {
		return "", err
	}

	if err := w.attributions.FlushTo(ctx, bundleDir); err != nil {
		return "", err
	}

	return bundleDir, nil
}
