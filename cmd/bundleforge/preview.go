// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// renderAttributionsPreview wraps the plain-text AttributionsDocument in a
// fenced code block and renders it with glamour, so "validate --preview"
// gets the same styled-terminal treatment as the rest of the CLI.
func renderAttributionsPreview(document string) (string, error) {
	if document == "" {
		return "_(empty closure — nothing to attribute)_", nil
	}
	markdown := fmt.Sprintf("## Attributions preview\n\n```\n%s\n```\n", document)
	return glamour.Render(markdown, "dark")
}
