// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"composer-cli/pkg/compose"
	"composer-cli/pkg/depcheck"
	"composer-cli/pkg/fragment"
	"composer-cli/pkg/request"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark style.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light style.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the style used for rendered guides.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors. It wraps
	// ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the loaded composer configuration.
	Config struct {
		// PluginsDir is where fragment sources live.
		PluginsDir string `json:"plugins_dir" mapstructure:"plugins_dir" toml:"plugins_dir"`
		// Extension is appended to a fragment name to find its plain source.
		Extension string `json:"extension" mapstructure:"extension" toml:"extension"`
		// Presets extend or override the stock preset table.
		Presets []PresetEntry `json:"presets" mapstructure:"presets" toml:"presets"`
		// Syntax configures metadata line recognition.
		Syntax SyntaxConfig `json:"syntax" mapstructure:"syntax" toml:"syntax"`
		// Output configures the provenance header.
		Output OutputConfig `json:"output" mapstructure:"output" toml:"output"`
		// Checks configures optional strict checks.
		Checks ChecksConfig `json:"checks" mapstructure:"checks" toml:"checks"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// PresetEntry defines one preset.
	PresetEntry struct {
		Name      string   `json:"name" mapstructure:"name" toml:"name"`
		Fragments []string `json:"fragments" mapstructure:"fragments" toml:"fragments"`
	}

	// SyntaxConfig mirrors fragment.Syntax.
	SyntaxConfig struct {
		InternalPrefix string `json:"internal_prefix" mapstructure:"internal_prefix" toml:"internal_prefix"`
		ProvidesMarker string `json:"provides_marker" mapstructure:"provides_marker" toml:"provides_marker"`
	}

	// OutputConfig configures the artifact header.
	OutputConfig struct {
		Interpreter string `json:"interpreter" mapstructure:"interpreter" toml:"interpreter"`
		Generator   string `json:"generator" mapstructure:"generator" toml:"generator"`
	}

	// ChecksConfig turns ordering and multiplicity warnings into errors.
	ChecksConfig struct {
		StrictOrder    bool `json:"strict_order" mapstructure:"strict_order" toml:"strict_order"`
		UniqueProvides bool `json:"unique_provides" mapstructure:"unique_provides" toml:"unique_provides"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate returns an *InvalidColorSchemeError for unknown values.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// String returns the scheme name.
func (c ColorScheme) String() string { return string(c) }

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		PluginsDir: fragment.DefaultDir,
		Extension:  fragment.DefaultExtension,
		Presets:    []PresetEntry{},
		Syntax: SyntaxConfig{
			InternalPrefix: fragment.DefaultInternalPrefix,
			ProvidesMarker: fragment.DefaultProvidesMarker,
		},
		Output: OutputConfig{
			Interpreter: compose.DefaultInterpreter,
			Generator:   compose.DefaultGenerator,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks every field CUE cannot: preset table consistency and the
// fragment syntax. All failures are collected into one *InvalidConfigError.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.PluginsDir) == "" {
		errs = append(errs, errors.New("plugins_dir must not be empty"))
	}
	if err := c.FragmentSyntax().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("presets: %s defined twice", p.Name))
		}
		seen[p.Name] = true
	}
	if _, err := request.NewPresets(c.PresetTable()); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// PresetTable returns the stock presets overlaid with configured ones.
func (c *Config) PresetTable() map[string][]string {
	table := request.DefaultPresetTable()
	for _, p := range c.Presets {
		table[p.Name] = p.Fragments
	}
	return table
}

// FragmentSyntax returns the configured line syntax.
func (c *Config) FragmentSyntax() fragment.Syntax {
	return fragment.Syntax{
		InternalPrefix: c.Syntax.InternalPrefix,
		ProvidesMarker: c.Syntax.ProvidesMarker,
	}
}

// Policy returns the configured strictness.
func (c *Config) Policy() depcheck.Policy {
	return depcheck.Policy{
		StrictOrder:    c.Checks.StrictOrder,
		UniqueProvides: c.Checks.UniqueProvides,
	}
}
