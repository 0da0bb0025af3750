// Package config holds run configuration: a YAML file for the region,
// threshold, file paths and polling knobs, plus the API token from the
// environment (a .env file is honored, for parity with how people actually
// run this). A missing token is the one fatal-at-launch condition.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/skypies/geo"
)

type Config struct {
	Bounds       BoundsConfig `yaml:"bounds"`
	ThresholdLat float64      `yaml:"threshold_lat"`

	PollIntervalMinutes int `yaml:"poll_interval_minutes"`
	MaxPolls            int `yaml:"max_polls"`
	MaxDurationHours    int `yaml:"max_duration_hours"`
	LiveGapPolls        int `yaml:"live_gap_polls"`

	ConfidenceRadiusKM float64 `yaml:"confidence_radius_km"`

	DataDir      string `yaml:"data_dir"`
	AirportsFile string `yaml:"airports_file"`
	LandFile     string `yaml:"land_file"`
	OutputFile   string `yaml:"output_file"`
}

// BoundsConfig is the region box, in the feed's north,south,west,east terms.
type BoundsConfig struct {
	North float64 `yaml:"north"`
	South float64 `yaml:"south"`
	West  float64 `yaml:"west"`
	East  float64 `yaml:"east"`
}

func (b BoundsConfig)Box() geo.LatlongBox {
	return geo.LatlongBox{
		SW: geo.Latlong{Lat:b.South, Long:b.West},
		NE: geo.Latlong{Lat:b.North, Long:b.East},
	}
}

// Defaults returns the config for the canonical Arctic run.
func Defaults() Config {
	return Config{
		Bounds: BoundsConfig{North:90.0, South:80.0, West:-180.0, East:180.0},
		ThresholdLat: 80.0,
		PollIntervalMinutes: 15,
		LiveGapPolls: 2,
		ConfidenceRadiusKM: 150.0,
		DataDir: "data",
		AirportsFile: "world-airports.csv",
		OutputFile: "arctic_flights.pdf",
	}
}

// LoadFile overlays a YAML file onto the defaults. A missing file just
// means defaults.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()

	data,err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// APIToken fetches the FR24 token from the environment, loading .env first
// if one is lying around. An empty token is an error the caller should
// treat as fatal.
func APIToken() (string, error) {
	_ = godotenv.Load() // no .env file is fine; the var may be set already

	token := os.Getenv("FR24_API")
	if token == "" {
		return "", fmt.Errorf("config: FR24_API token not set (env or .env)")
	}
	return token, nil
}
