package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/geo"
)

// Config is the terminal client's settings file.
type Config struct {
	BaseURL string    `yaml:"base_url"`
	Basemap string    `yaml:"basemap"`
	Center  []float64 `yaml:"center"`
	Zoom    int       `yaml:"zoom"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:5050",
		Center:  []float64{geo.DefaultCenter.X(), geo.DefaultCenter.Y()},
		Zoom:    1,
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Center) != 2 {
		return cfg, fmt.Errorf("config %s: center must be [easting, northing]", path)
	}
	if cfg.Zoom < MinZoom || cfg.Zoom > MaxZoom {
		return cfg, fmt.Errorf("config %s: zoom must be between %d and %d", path, MinZoom, MaxZoom)
	}
	return cfg, nil
}

// CenterPoint is the configured centre kept inside Finland.
func (c Config) CenterPoint() orb.Point {
	if len(c.Center) != 2 {
		return geo.DefaultCenter
	}
	return geo.Clamp(geo.Finland, orb.Point{c.Center[0], c.Center[1]})
}
