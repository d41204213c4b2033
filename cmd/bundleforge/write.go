// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"

	"bundleforge/internal/pipeline"

	"github.com/spf13/cobra"
)

func newWriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "write",
		Short: "Materialize the bundle directory without packing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return formatAndExit(cmd, err)
			}

			p := pipeline.NewNative(cfg, verbose)
			bundleDir, err := p.Write(context.Background())
			if err != nil {
				return formatAndExit(cmd, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" wrote bundle to "+PathStyle.Render(bundleDir))
			return nil
		},
	}
}
