// SPDX-License-Identifier: MPL-2.0

package shelltool

import (
	"bytes"
	"context"
	"os/exec"

	"bundleforge/pkg/bundletool"
)

// ProcessInvoker runs an opaque tool as a real subprocess via os/exec,
// satisfying bundletool.Invoker. It captures stdout and stderr separately
// so a non-zero exit can be reported with the tool's own diagnostic text.
type ProcessInvoker struct{}

// NewProcessInvoker returns an Invoker that shells out to a real binary.
func NewProcessInvoker() *ProcessInvoker {
	return &ProcessInvoker{}
}

// Run executes name with args in dir and returns captured stdout. A
// non-zero exit is reported as a *bundletool.ToolFailureError carrying the
// captured stderr.
func (p *ProcessInvoker) Run(ctx context.Context, dir, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &bundletool.ToolFailureError{
			Tool:   name,
			Args:   args,
			Stderr: stderr.String(),
			Cause:  err,
		}
	}

	return stdout.Bytes(), nil
}
