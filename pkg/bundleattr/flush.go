// SPDX-License-Identifier: EPL-2.0

package bundleattr

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"bundleforge/pkg/bundlevalidate"
)

// Flush recomputes the canonical attributions document (and versions index,
// where configured) and writes them to disk, overwriting whatever is
// already there. It is the action every staleness Violation's Fixer binds
// to.
func (e *Engine) Flush(ctx context.Context) error {
	return e.flushAt(ctx, e.cfg.LicensesPath, e.cfg.VersionsPath)
}

// FlushTo flushes the same canonical attributions under dir, using the
// configured licenses/versions file basenames rather than their configured
// directories. It is what WriteEngine uses to materialize attributions
// inside a freshly built bundle directory.
func (e *Engine) FlushTo(ctx context.Context, dir string) error {
	licensesPath := filepath.Join(dir, filepath.Base(e.cfg.LicensesPath))
	versionsPath := ""
	if e.cfg.VersionsPath != "" {
		versionsPath = filepath.Join(dir, filepath.Base(e.cfg.VersionsPath))
	}
	return e.flushAt(ctx, licensesPath, versionsPath)
}

func (e *Engine) flushAt(ctx context.Context, licensesPath, versionsPath string) error {
	attrs, err := e.Collect(ctx)
	if err != nil {
		return err
	}
	document, order, versions := Render(e.cfg.PackageName, attrs, e.versionsExternalized())

	if err := os.WriteFile(licensesPath, []byte(document), 0o644); err != nil {
		return err
	}

	switch {
	case versionsPath != "":
		canonical, err := marshalVersionsIndex(order, versions)
		if err != nil {
			return err
		}
		return os.WriteFile(versionsPath, canonical, 0o644)
	case e.cfg.LegacyVersionsSidecar:
		// One of the two variants the source disagrees with itself on:
		// when no explicit versionsPath is configured, still write a
		// "<licensesPath>.versions.json" sidecar unconditionally.
		canonical, err := marshalVersionsIndex(order, versions)
		if err != nil {
			return err
		}
		return os.WriteFile(licensesPath+".versions.json", canonical, 0o644)
	default:
		// Newer variant: versions are embedded in the document's
		// packageFqn titles, no sidecar is written at all.
		return nil
	}
}

func (e *Engine) flushLicensesFixer() bundlevalidate.Fixer {
	return func(ctx context.Context) error {
		return e.Flush(ctx)
	}
}

func (e *Engine) flushVersionsFixer() bundlevalidate.Fixer {
	return func(ctx context.Context) error {
		return e.Flush(ctx)
	}
}

// marshalVersionsIndex renders a VersionsIndex as two-space-indented JSON
// with key order equal to order, since encoding/json would otherwise sort
// map keys alphabetically and break the insertion-order contract.
func marshalVersionsIndex(order []string, versions map[string][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(": ")
		value, err := json.Marshal(versions[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	if len(order) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
