// SPDX-License-Identifier: EPL-2.0

// Package bundlewrite materializes a bundle directory from a resolved,
// validated package: copying the package tree, overlaying bundler output,
// rewriting package.json's dependency sections, and flushing attributions.
// PackEngine runs that same write and then invokes the packing tool to produce
// the final tarball.
package bundlewrite
