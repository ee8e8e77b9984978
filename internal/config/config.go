package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Pins names the GPIO lines for the periph backend, resolved through
// gpioreg. Order is row 0 first, column 0 first.
type Pins struct {
	Rows []string `yaml:"rows"`
	Cols []string `yaml:"cols"`
}

// Lines holds character-device offsets for the cdev backend.
type Lines struct {
	Chip string `yaml:"chip"` // e.g. gpiochip0
	Rows []int  `yaml:"rows"`
	Cols []int  `yaml:"cols"`
}

// Buttons names the two input pins wired to the feedback glue.
type Buttons struct {
	A string `yaml:"a,omitempty"`
	B string `yaml:"b,omitempty"`
}

// Strip configures the optional NeoPixel mirror.
type Strip struct {
	Enabled    bool   `yaml:"enabled"`
	Port       string `yaml:"port,omitempty"` // spireg name, empty = first
	Serpentine bool   `yaml:"serpentine"`
	Color      uint32 `yaml:"color,omitempty"` // 0xRRGGBB lit-pixel color
}

type Config struct {
	Driver string `yaml:"driver"` // "gpio" | "cdev" | "sim"

	Pins    Pins    `yaml:"pins,omitempty"`
	Lines   Lines   `yaml:"lines,omitempty"`
	Buttons Buttons `yaml:"buttons,omitempty"`

	Brightness   uint8  `yaml:"brightness"`
	RefreshUs    int    `yaml:"refresh_us"`     // scan loop yield interval
	DwellScaleUs int    `yaml:"dwell_scale_us"` // brightness constant K
	Greeting     string `yaml:"greeting,omitempty"`

	Strip Strip `yaml:"strip,omitempty"`
}

// Default is the micro:bit-style 5x5 layout.
func Default() *Config {
	return &Config{
		Driver: "gpio",
		Pins: Pins{
			Rows: []string{"P0.21", "P0.22", "P0.15", "P0.24", "P0.19"},
			Cols: []string{"P0.28", "P0.11", "P0.31", "P1.05", "P0.30"},
		},
		Brightness:   5,
		RefreshUs:    500,
		DwellScaleUs: 6000,
		Greeting:     "Hello, World!",
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
