// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"bundleforge/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

// SidecarCUEName and SidecarTOMLName are the two accepted sidecar config
// file names. A project may check in either; both populate the same Viper
// instance before CLI flags are applied by the caller.
const (
	SidecarCUEName  = "bundleforge.config.cue"
	SidecarTOMLName = "bundleforge.config.toml"
)

//go:embed schema.cue
var configSchema string

// LoadOptions drives sidecar discovery. An explicit ConfigFilePath is used
// exclusively; otherwise SearchDir (typically the package directory) is
// checked for either sidecar name.
type LoadOptions struct {
	ConfigFilePath string
	SearchDir      string
}

// Load builds a Config from built-in defaults merged with an optional
// sidecar file. CLI flags are applied by the caller on top of the returned
// Config; Load itself never sees them.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	path, err := resolveSidecarPath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := mergeSidecar(v, path); err != nil {
			return nil, "", err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			Wrap(fmt.Errorf("parse config: %w", err)).
			BuildError()
	}

	return &cfg, path, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("package_dir", defaults.PackageDir)
	v.SetDefault("entry_points", defaults.EntryPoints)
	v.SetDefault("externals.runtime", defaults.Externals.Runtime)
	v.SetDefault("externals.optional", defaults.Externals.Optional)
	v.SetDefault("allowed_licenses", defaults.AllowedLicenses)
	v.SetDefault("resources", defaults.Resources)
	v.SetDefault("dont_attribute", defaults.DontAttribute)
	v.SetDefault("test", defaults.Test)
	v.SetDefault("minify_whitespace", defaults.MinifyWhitespace)
	v.SetDefault("metafile", defaults.Metafile)
	v.SetDefault("sourcemap", defaults.Sourcemap)
	v.SetDefault("licenses_path", defaults.LicensesPath)
	v.SetDefault("versions_file", defaults.VersionsFile)
	v.SetDefault("attribute_versions_separately", defaults.AttributeVersionsSeparately)
	v.SetDefault("legacy_versions_sidecar", defaults.LegacyVersionsSidecar)
	v.SetDefault("tools.license_probe", defaults.Tools.LicenseProbe)
	v.SetDefault("tools.circularity", defaults.Tools.Circularity)
	v.SetDefault("tools.bundler", defaults.Tools.Bundler)
	v.SetDefault("tools.packer", defaults.Tools.Packer)
}

func resolveSidecarPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("verify the file path is correct").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	searchDir := opts.SearchDir
	if searchDir == "" {
		searchDir = "."
	}
	for _, name := range []string{SidecarCUEName, SidecarTOMLName} {
		candidate := filepath.Join(searchDir, name)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func mergeSidecar(v *viper.Viper, path string) error {
	switch filepath.Ext(path) {
	case ".toml":
		return mergeTOML(v, path)
	default:
		return mergeCUE(v, path)
	}
}

func mergeTOML(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.MergeInConfig(); err != nil {
		return issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("check that the file contains valid TOML syntax").
			Wrap(err).
			BuildError()
	}
	return nil
}

// mergeCUE validates path against #Config before merging it into v, a
// compile-then-unify-then-decode flow with no max-file-size guard (sidecars
// here are project-local and hand-authored, not pulled from an untrusted
// package).
func mergeCUE(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("check that the file contains valid CUE syntax").
			Wrap(userValue.Err()).
			BuildError()
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("verify the configuration values match the expected schema").
			Wrap(err).
			BuildError()
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return v.MergeConfigMap(configMap)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
