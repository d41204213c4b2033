// SPDX-License-Identifier: EPL-2.0

package bundletool

import (
	"bytes"
	"context"
	"strings"
)

// Packer wraps the opaque npm-compatible packing tool: invoked inside a
// bundle directory, it produces "<name>-<version>.tgz" in destDir.
type Packer struct {
	Invoker Invoker
	Command string
}

// NewPacker returns a Packer that runs command through invoker.
func NewPacker(invoker Invoker, command string) *Packer {
	return &Packer{Invoker: invoker, Command: command}
}

// Pack runs the packer tool in bundleDir with destDir as its pack
// destination and returns the tarball path the tool reports on stdout.
func (p *Packer) Pack(ctx context.Context, bundleDir, destDir string) (string, error) {
	args := []string{"pack", "--pack-destination", destDir}
	out, err := p.Invoker.Run(ctx, bundleDir, p.Command, args)
	if err != nil {
		return "", &ToolFailureError{Tool: p.Command, Args: args, Cause: err}
	}
	return strings.TrimSpace(lastLine(out)), nil
}

func lastLine(out []byte) string {
	trimmed := bytes.TrimRight(out, "\n")
	idx := bytes.LastIndexByte(trimmed, '\n')
	if idx < 0 {
		return string(trimmed)
	}
	return string(trimmed[idx+1:])
}
