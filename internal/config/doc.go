// SPDX-License-Identifier: MPL-2.0

// Package config handles BundleConfig loading using Viper with an optional
// CUE or TOML sidecar file.
//
// Configuration layers, lowest to highest precedence: built-in defaults,
// an optional project-local "bundleforge.config.cue" (schema-validated
// against schema.cue) or "bundleforge.config.toml" sidecar, then CLI flags
// applied by the caller on top of the returned Config. There is no
// per-user global config directory — every option is project-local.
package config
