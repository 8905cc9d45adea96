// Package config holds checker-wide constants and the lumen.yaml options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const SourceFileExt = ".lm"

// ConfigFileName is the per-project options file, looked up in the working
// directory.
const ConfigFileName = "lumen.yaml"

// Builtin type names recognized by the solver's reference expansion.
const (
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	BoolTypeName   = "Bool"
	CharTypeName   = "Char"
	StringTypeName = "String"
	BytesTypeName  = "Bytes"
	VoidTypeName   = "Void"
	ListTypeName   = "List"
	DictTypeName   = "Dict"
	SetTypeName    = "Set"
	OptionTypeName = "Option"
	ResultTypeName = "Result"
)

// Config are the tunable checker options. Zero values fall back to the
// defaults below.
type Config struct {
	// DefaultIntWidth is the width given to unsuffixed Int annotations.
	DefaultIntWidth int `yaml:"default_int_width,omitempty"`

	// DefaultFloatWidth is the width given to unsuffixed Float annotations.
	DefaultFloatWidth int `yaml:"default_float_width,omitempty"`

	// Strict makes unconstrained parameters an error instead of a warning.
	Strict bool `yaml:"strict,omitempty"`

	// Color controls report coloring: auto, always, never.
	Color string `yaml:"color,omitempty"`
}

// Default returns the configuration used when no lumen.yaml is present.
func Default() Config {
	return Config{
		DefaultIntWidth:   64,
		DefaultFloatWidth: 64,
		Color:             "auto",
	}
}

// Load reads and validates a lumen.yaml. A missing file is not an error;
// the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.validate(path)
}

func (c Config) validate(path string) error {
	switch c.DefaultIntWidth {
	case 0, 8, 16, 32, 64:
	default:
		return fmt.Errorf("%s: default_int_width must be 8, 16, 32 or 64", path)
	}
	switch c.DefaultFloatWidth {
	case 0, 32, 64:
	default:
		return fmt.Errorf("%s: default_float_width must be 32 or 64", path)
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%s: color must be auto, always or never", path)
	}
	return nil
}
