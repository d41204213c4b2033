// SPDX-License-Identifier: MPL-2.0

// Command bundleforge is a single binary exposing validate/write/pack
// subcommands over one BundleConfig.
package main

func main() {
	Execute()
}
