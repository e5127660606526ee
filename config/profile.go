package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

var ErrInvalidProfile = errors.New("invalid maze profile")

// Profile is a YAML file of generation parameters. Zero fields leave the
// corresponding setting untouched.
type Profile struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	CellSize    int     `yaml:"cell_size"`
	Seed        int64   `yaml:"seed"`
	Output      string  `yaml:"output"`
	WallColor   string  `yaml:"wall_color"`
	Background  string  `yaml:"background"`
	StrokeWidth float32 `yaml:"stroke_width"`
}

// LoadProfile reads and parses the profile at path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a profile, rejecting unknown keys and negative values.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	if p.Width < 0 || p.Height < 0 || p.CellSize < 0 || p.StrokeWidth < 0 {
		return nil, fmt.Errorf("%w: sizes must not be negative", ErrInvalidProfile)
	}
	return &p, nil
}
