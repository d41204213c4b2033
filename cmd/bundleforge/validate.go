// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"bundleforge/internal/pipeline"
	"bundleforge/pkg/bundlevalidate"

	"github.com/spf13/cobra"
)

var (
	fixViolations bool
	jsonOutput    bool
	previewOutput bool
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate licenses, attributions, circular imports, and resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return formatAndExit(cmd, err)
			}

			p := pipeline.NewNative(cfg, verbose)
			ctx := context.Background()

			if previewOutput {
				if err := runPreview(ctx, cmd, p); err != nil {
					return formatAndExit(cmd, err)
				}
			}

			report, err := runValidate(ctx, p)
			if err != nil {
				return formatAndExit(cmd, err)
			}

			if jsonOutput {
				if err := printReportJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printReportHuman(cmd, report)
			}

			if !report.Success {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fixViolations, "fix", "f", false, "apply every fixable violation's fixer")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the validation report as JSON")
	cmd.Flags().BoolVar(&previewOutput, "preview", false, "render the computed attributions document before validating")
	return cmd
}

func runValidate(ctx context.Context, p *pipeline.Pipeline) (bundlevalidate.Report, error) {
	if fixViolations {
		return p.ValidateAndFix(ctx)
	}
	return p.Validate(ctx)
}

func runPreview(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline) error {
	document, err := p.Preview(ctx)
	if err != nil {
		return err
	}
	rendered, err := renderAttributionsPreview(document)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), document)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

type jsonViolation struct {
	Kind    bundlevalidate.Kind `json:"kind"`
	Message string              `json:"message"`
	Fixable bool                `json:"fixable"`
}

type jsonReport struct {
	Success    bool            `json:"success"`
	Violations []jsonViolation `json:"violations"`
}

func printReportJSON(cmd *cobra.Command, report bundlevalidate.Report) error {
	out := jsonReport{Success: report.Success}
	for _, v := range report.Violations {
		out.Violations = append(out.Violations, jsonViolation{Kind: v.Kind, Message: v.Message, Fixable: v.Fixable})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printReportHuman(cmd *cobra.Command, report bundlevalidate.Report) {
	stdout := cmd.OutOrStdout()
	if report.Success {
		fmt.Fprintln(stdout, SuccessStyle.Render("✓")+" validation passed")
		return
	}
	fmt.Fprintf(stdout, "%s validation failed with %d violation(s)\n", ErrorStyle.Render("✗"), len(report.Violations))
	fmt.Fprintln(stdout)
	for _, v := range report.Violations {
		tag := WarningStyle.Render(fmt.Sprintf("[%s]", v.Kind))
		fmt.Fprintf(stdout, "  %s %s\n", tag, v.Message)
	}
}
