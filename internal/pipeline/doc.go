// SPDX-License-Identifier: MPL-2.0

// Package pipeline wires the resolver, classifier, attributions engine,
// validation orchestrator, write engine, and packer into one orchestration
// graph and threads a single logger through every stage: resolve the
// dependency closure, classify it into bundled/external sets, compute
// attributions, validate, write the bundle, and (for pack) invoke the
// packing tool.
package pipeline
