// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bundleforge/internal/config"
	"bundleforge/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"

	verbose     bool
	cfgFile     string
	packageDir  string
	entrypoints []string
	resources   []string
	allowedLics []string
	externals   []string
)

var rootCmd = &cobra.Command{
	Use:   "bundleforge",
	Short: "Resolve, validate, and pack an npm package's bundled dependency closure",
	Long: TitleStyle.Render("bundleforge") + SubtitleStyle.Render(" - dependency closure resolution, license validation, attributions, and bundling") + `

bundleforge resolves an npm package's transitive dependency closure from
its installed node_modules layout, classifies dependencies as bundled or
external, computes a canonical third-party attributions document, runs
license/circularity/resource validation, and writes or packs the result.

` + SubtitleStyle.Render("Examples:") + `
  bundleforge validate              Check licenses, attributions, and resources
  bundleforge validate --fix        Check and repair attribution staleness
  bundleforge write                 Materialize the bundle directory
  bundleforge pack                  Write and tar the bundle into a tgz`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "explicit sidecar config file path (bundleforge.config.cue or .toml)")
	rootCmd.PersistentFlags().StringVar(&packageDir, "package-dir", ".", "root of the package to bundle")
	rootCmd.PersistentFlags().StringArrayVar(&entrypoints, "entrypoint", nil, "entry point relative path (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&resources, "resource", nil, "logical-name:relative-path resource (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&allowedLics, "allowed-license", nil, "allowed SPDX license identifier (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&externals, "external", nil, "name:{optional|runtime} external dependency (repeatable)")

	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newWriteCommand())
	rootCmd.AddCommand(newPackCommand())
}

// Execute runs the root command through fang for styled help/errors.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig builds the effective BundleConfig: sidecar file (if any) merged
// with built-in defaults, then overridden by any persistent flag the caller
// actually set, which is always highest precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, _, err := config.Load(config.LoadOptions{
		ConfigFilePath: cfgFile,
		SearchDir:      packageDir,
	})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("package-dir") || cfg.PackageDir == "" {
		cfg.PackageDir = packageDir
	}
	if flags.Changed("entrypoint") {
		cfg.EntryPoints = entrypoints
	}
	if flags.Changed("allowed-license") {
		cfg.AllowedLicenses = allowedLics
	}
	if flags.Changed("resource") {
		parsed, err := parseResourceFlags(resources)
		if err != nil {
			return nil, err
		}
		cfg.Resources = parsed
	}
	if flags.Changed("external") {
		runtime, optional, err := parseExternalFlags(externals)
		if err != nil {
			return nil, err
		}
		cfg.Externals.Runtime = runtime
		cfg.Externals.Optional = optional
	}

	return cfg, nil
}

func parseResourceFlags(raw []string) (map[string]string, error) {
	resources := make(map[string]string, len(raw))
	for _, entry := range raw {
		name, relPath, ok := splitOnce(entry, ':')
		if !ok {
			return nil, issue.NewErrorContext().
				WithOperation("parse --resource flag").
				WithResource(entry).
				WithSuggestion(`use the form name:relative/path`).
				Wrap(fmt.Errorf("invalid --resource value: %q", entry)).
				BuildError()
		}
		resources[name] = relPath
	}
	return resources, nil
}

func parseExternalFlags(raw []string) (runtime, optional []string, err error) {
	for _, entry := range raw {
		name, kind, ok := splitOnce(entry, ':')
		if !ok {
			return nil, nil, issue.NewErrorContext().
				WithOperation("parse --external flag").
				WithResource(entry).
				WithSuggestion(`use the form name:optional or name:runtime`).
				Wrap(fmt.Errorf("invalid --external value: %q", entry)).
				BuildError()
		}
		switch kind {
		case "runtime":
			runtime = append(runtime, name)
		case "optional":
			optional = append(optional, name)
		default:
			return nil, nil, issue.NewErrorContext().
				WithOperation("parse --external flag").
				WithResource(entry).
				WithSuggestion(`kind must be "optional" or "runtime"`).
				Wrap(fmt.Errorf("unknown external kind: %q", kind)).
				BuildError()
		}
	}
	return runtime, optional, nil
}

func splitOnce(s string, sep byte) (before, after string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
