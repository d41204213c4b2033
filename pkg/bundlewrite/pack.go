// SPDX-License-Identifier: EPL-2.0

package bundlewrite

import "context"

// Packer is the capability PackEngine needs from the npm-compatible
// packing tool.
type Packer interface {
	Pack(ctx context.Context, bundleDir, destDir string) (string, error)
}

// PackEngine runs Write and then invokes the packing tool against the
// resulting bundle directory.
type PackEngine struct {
	write  *WriteEngine
	packer Packer
}

// NewPackEngine returns a PackEngine that writes through write and packs
// through packer.
func NewPackEngine(write *WriteEngine, packer Packer) *PackEngine {
	return &PackEngine{write: write, packer: packer}
}

// Pack materializes the bundle and packs it into destDir, defaulting to the
// original package directory when destDir is empty.
func (p *PackEngine) Pack(ctx context.Context, destDir string) (string, error) {
	bundleDir, err := p.write.Write(ctx)
	if err != nil {
		return "", err
	}
	if destDir == "" {
		destDir = p.write.cfg.PackageDir
	}
	return p.packer.Pack(ctx, bundleDir, destDir)
}
