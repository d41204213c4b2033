// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"

	"bundleforge/internal/pipeline"

	"github.com/spf13/cobra"
)

var destination string

func newPackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Write the bundle and produce the npm tarball",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return formatAndExit(cmd, err)
			}

			p := pipeline.NewNative(cfg, verbose)
			tarball, err := p.Pack(context.Background(), destination)
			if err != nil {
				return formatAndExit(cmd, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" packed "+PathStyle.Render(tarball))
			return nil
		},
	}
	cmd.Flags().StringVar(&destination, "destination", "", "pack destination directory (default: the original package directory)")
	return cmd
}
