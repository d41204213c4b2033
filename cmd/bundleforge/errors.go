// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"

	"bundleforge/internal/issue"

	"github.com/spf13/cobra"
)

// formatErrorForDisplay formats err for user display, unwrapping an
// ActionableError into its multi-line, suggestion-bearing form.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// formatAndExit prints err through formatErrorForDisplay and returns an
// ExitError carrying exit code 1.
func formatAndExit(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("error: ")+formatErrorForDisplay(err, verbose))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1}
}
