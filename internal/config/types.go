// SPDX-License-Identifier: MPL-2.0

package config

// ExternalsConfig partitions dependency names that must not be bundled into
// the runtime-required and optional sets a DependencyClassifier run
// classifies against.
type ExternalsConfig struct {
	Runtime  []string `mapstructure:"runtime"`
	Optional []string `mapstructure:"optional"`
}

// Config is BundleConfig: the full set of options one bundle pipeline run
// is configured by.
type Config struct {
	PackageDir string `mapstructure:"package_dir"`

	EntryPoints []string        `mapstructure:"entry_points"`
	Externals   ExternalsConfig `mapstructure:"externals"`

	AllowedLicenses []string          `mapstructure:"allowed_licenses"`
	Resources       map[string]string `mapstructure:"resources"`
	DontAttribute   string            `mapstructure:"dont_attribute"`

	Test string `mapstructure:"test"`

	MinifyWhitespace bool   `mapstructure:"minify_whitespace"`
	Metafile         string `mapstructure:"metafile"`
	Sourcemap        bool   `mapstructure:"sourcemap"`

	LicensesPath                string `mapstructure:"licenses_path"`
	VersionsFile                string `mapstructure:"versions_file"`
	AttributeVersionsSeparately bool   `mapstructure:"attribute_versions_separately"`

	// LegacyVersionsSidecar resolves an open question the source leaves
	// ambiguous: when AttributeVersionsSeparately is false, should flush
	// still write "<licensesPath>.versions.json" unconditionally? Default
	// false matches the newer variant, where versions live only in the
	// document's embedded packageFqn titles.
	LegacyVersionsSidecar bool `mapstructure:"legacy_versions_sidecar"`

	Tools ToolCommands `mapstructure:"tools"`
}

// ToolCommands names the four opaque external tools the pipeline invokes
// only by argv shape and output format, never by a fixed binary name.
// These are the conventional command names; a project overrides them in
// its sidecar config the same way it overrides any other option.
type ToolCommands struct {
	LicenseProbe string `mapstructure:"license_probe"`
	Circularity  string `mapstructure:"circularity"`
	Bundler      string `mapstructure:"bundler"`
	Packer       string `mapstructure:"packer"`
}

// DefaultConfig returns the built-in defaults every load starts from.
func DefaultConfig() *Config {
	return &Config{
		AllowedLicenses:  []string{"mit", "apache-2.0", "isc", "bsd-2-clause", "bsd-3-clause"},
		LicensesPath:     "THIRD_PARTY_LICENSES",
		MinifyWhitespace: true,
		Tools: ToolCommands{
			LicenseProbe: "license-probe",
			Circularity:  "madge",
			Bundler:      "esbuild",
			Packer:       "npm",
		},
	}
}
