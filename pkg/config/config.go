// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for pocketshow.
type Config struct {
	// Storage
	Root string `yaml:"root"`

	// Presentation
	Sink       string      `yaml:"sink"` // ascii, png or null
	DumpDir    string      `yaml:"dump_dir"`
	Background string      `yaml:"background"`
	Ascii      AsciiConfig `yaml:"ascii"`

	// Export
	Quality int `yaml:"quality"`

	// Logging
	LogLevel string `yaml:"log_level"`
	Quiet    bool   `yaml:"quiet"`
}

// AsciiConfig sizes the terminal character grid.
type AsciiConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Storage
		Root: "./sdcard",

		// Presentation
		Sink:       "ascii",
		DumpDir:    "frames",
		Background: "#000000",
		Ascii: AsciiConfig{
			Columns: 64,
			Rows:    22,
		},

		// Export
		Quality: 80,

		// Logging
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	for i, c := range []byte{hex[0], hex[1]} {
		v := hexValue(c)
		if i == 0 {
			r = v << 4
		} else {
			r |= v
		}
	}
	for i, c := range []byte{hex[2], hex[3]} {
		v := hexValue(c)
		if i == 0 {
			g = v << 4
		} else {
			g |= v
		}
	}
	for i, c := range []byte{hex[4], hex[5]} {
		v := hexValue(c)
		if i == 0 {
			b = v << 4
		} else {
			b |= v
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
