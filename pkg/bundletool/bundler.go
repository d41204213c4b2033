// SPDX-License-Identifier: EPL-2.0

package bundletool

import (
	"context"
	"encoding/json"
	"fmt"
)

// BundleRequest is the input contract to the opaque tree-shaking bundler.
type BundleRequest struct {
	PackageDir       string
	EntryPoints      []string
	Externals        []string
	MinifyWhitespace bool
	Metafile         string
	Sourcemap        bool
}

// BundleResult is the bundler's output contract.
type BundleResult struct {
	OutputDir string
}

type bundleRequestJSON struct {
	PackageDir       string   `json:"packageDir"`
	EntryPoints      []string `json:"entryPoints"`
	Externals        []string `json:"externals"`
	MinifyWhitespace bool     `json:"minifyWhitespace"`
	Metafile         string   `json:"metafile,omitempty"`
	Sourcemap        bool     `json:"sourcemap"`
}

type bundleResultJSON struct {
	OutputDir string `json:"outputDir"`
}

// Bundler wraps the opaque JS bundler tool. It marks every external name as
// "do not inline" and produces one output file per entry point.
type Bundler struct {
	Invoker Invoker
	Command string
}

// NewBundler returns a Bundler that runs command through invoker.
func NewBundler(invoker Invoker, command string) *Bundler {
	return &Bundler{Invoker: invoker, Command: command}
}

// Bundle invokes the bundler tool with req serialized as its stdin-style
// JSON argument and returns the output directory it reports.
func (b *Bundler) Bundle(ctx context.Context, req BundleRequest) (BundleResult, error) {
	payload, err := json.Marshal(bundleRequestJSON{
		PackageDir:       req.PackageDir,
		EntryPoints:      req.EntryPoints,
		Externals:        req.Externals,
		MinifyWhitespace: req.MinifyWhitespace,
		Metafile:         req.Metafile,
		Sourcemap:        req.Sourcemap,
	})
	if err != nil {
		return BundleResult{}, fmt.Errorf("encode bundle request: %w", err)
	}

	args := []string{"--request", string(payload)}
	out, err := b.Invoker.Run(ctx, req.PackageDir, b.Command, args)
	if err != nil {
		return BundleResult{}, &ToolFailureError{Tool: b.Command, Args: args, Cause: err}
	}

	var result bundleResultJSON
	if err := json.Unmarshal(out, &result); err != nil {
		return BundleResult{}, &ToolFailureError{Tool: b.Command, Args: args, Cause: fmt.Errorf("decode bundle output: %w", err)}
	}
	return BundleResult{OutputDir: result.OutputDir}, nil
}
