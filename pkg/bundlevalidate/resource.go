// SPDX-License-Identifier: EPL-2.0

package bundlevalidate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ResolveResources checks each declared logical-name -> relative-path
// resource against packageRoot and returns a missing-resource Violation
// for every one that does not exist. Resources are checked in name-sorted
// order so the resulting violation list is deterministic regardless of Go
// map iteration order.
func ResolveResources(packageRoot string, resources map[string]string) []Violation {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)

	var violations []Violation
	for _, name := range names {
		rel := resources[name]
		full := filepath.Join(packageRoot, rel)
		if _, err := os.Stat(full); err != nil {
			violations = append(violations, Violation{
				Kind:    KindMissingResource,
				Message: fmt.Sprintf("Unable to find resource (%s) relative to the package directory", name),
			})
		}
	}
	return violations
}
