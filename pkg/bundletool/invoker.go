// SPDX-License-Identifier: EPL-2.0

// Package bundletool wraps the external, opaque tools the pipeline treats
// as substitutable adapters: the license-metadata probe, the import-cycle
// analyzer, the JS bundler, and the npm-compatible packer. Every wrapper
// invokes its tool through an Invoker capability so tests can substitute a
// deterministic fake instead of shelling out to a real binary.
package bundletool

import "context"

// Invoker runs name with args in dir and returns its captured stdout.
// Implementations must propagate a non-zero exit status as an error; they
// never interpret stdout themselves.
type Invoker interface {
	Run(ctx context.Context, dir, name string, args []string) ([]byte, error)
}

// ToolFailureError wraps a non-zero exit or failed invocation of one of the
// opaque tools in this package. It is always a hard failure, never folded
// into a ValidationReport.
type ToolFailureError struct {
	Tool   string
	Args   []string
	Stderr string
	Cause  error
}

func (e *ToolFailureError) Error() string {
	if e.Stderr != "" {
		return "tool failure: " + e.Tool + ": " + e.Stderr
	}
	if e.Cause != nil {
		return "tool failure: " + e.Tool + ": " + e.Cause.Error()
	}
	return "tool failure: " + e.Tool
}

func (e *ToolFailureError) Unwrap() error {
	return e.Cause
}
