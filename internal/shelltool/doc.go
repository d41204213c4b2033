// SPDX-License-Identifier: MPL-2.0

// Package shelltool provides the concrete process-executing implementation
// of bundletool.Invoker, plus a portable shell interpreter for running an
// optional smoke-test command against a freshly written bundle.
package shelltool
