// Package config loads assembler tuning from an optional TOML file,
// following the pattern of a BurntSushi/toml-backed Config struct with
// package-level defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the tunable constants of the assembler. All of them
// have defaults matching the reference assembler; a project may override
// them via an asm24.toml file.
type Config struct {
	// Limits holds table and line-length caps.
	Limits struct {
		MaxSymbols    int `toml:"max_symbols"`
		MaxMacros     int `toml:"max_macros"`
		MaxMacroLines int `toml:"max_macro_lines"`
		MaxLineLength int `toml:"max_line_length"`
	} `toml:"limits"`

	// Layout holds addressing constants.
	Layout struct {
		BaseAddress int `toml:"base_address"`
	} `toml:"layout"`
}

// DefaultConfig returns the built-in defaults: 1000 symbols, 100
// macros, 100 lines per macro body, an 80-byte line cap, and base
// address 100.
func DefaultConfig() *Config {
	c := &Config{}
	c.Limits.MaxSymbols = 1000
	c.Limits.MaxMacros = 100
	c.Limits.MaxMacroLines = 100
	c.Limits.MaxLineLength = 80
	c.Layout.BaseAddress = 100
	return c
}

// Load reads a TOML configuration file, falling back to DefaultConfig
// when path is empty or does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
