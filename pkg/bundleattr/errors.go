// SPDX-License-Identifier: EPL-2.0

package bundleattr

import "fmt"

// ErrAttributionFailed is the sentinel wrapped when the license probe
// cannot locate a dependency even after the per-package fallback probe.
var ErrAttributionFailed = fmt.Errorf("attribution failed")

func errAttributionFailed(fqn string) error {
	return fmt.Errorf("%w: probe could not locate %s", ErrAttributionFailed, fqn)
}
