package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"trainlab/internal/hrzone"
)

// Config represents the application configuration
type Config struct {
	Athlete AthleteConfig `json:"athlete"`
	Display DisplayConfig `json:"display"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	Age          int     `json:"age"`
	RestingHR    float64 `json:"resting_hr"`
	MaxHR        float64 `json:"max_hr"`
	FitnessLevel string  `json:"fitness_level"`

	// Zones overrides the default 5-zone band layout when set.
	Zones *[5]hrzone.Band `json:"zones,omitempty"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
	PaceUnit     string `json:"pace_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: DefaultAthleteConfig(),
		Display: DisplayConfig{
			DistanceUnit: "km",
			PaceUnit:     "min/km",
		},
	}
}

// DefaultAthleteConfig returns athlete settings matching the standard
// 5-zone model.
func DefaultAthleteConfig() AthleteConfig {
	zones := hrzone.DefaultConfig()
	return AthleteConfig{
		Age:          35,
		RestingHR:    zones.RestingHR,
		MaxHR:        zones.MaxHR,
		FitnessLevel: "intermediate",
	}
}

// HRZones builds the zone calculator config for this athlete.
func (a AthleteConfig) HRZones() hrzone.Config {
	cfg := hrzone.DefaultConfig()
	if a.RestingHR > 0 {
		cfg.RestingHR = a.RestingHR
	}
	if a.MaxHR > 0 {
		cfg.MaxHR = a.MaxHR
	} else if a.Age > 0 {
		cfg.MaxHR = float64(220 - a.Age)
	}
	if a.Zones != nil {
		cfg.Bands = *a.Zones
	}
	return cfg
}

// Load reads the configuration from ~/.trainlab/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path,
// applying defaults for missing values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Athlete.MaxHR == 0 && cfg.Athlete.Age == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Athlete.FitnessLevel == "" {
		cfg.Athlete.FitnessLevel = defaults.Athlete.FitnessLevel
	}
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
	if cfg.Display.PaceUnit == "" {
		cfg.Display.PaceUnit = defaults.Display.PaceUnit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.trainlab/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// InitDefault writes the default configuration to the standard path and
// returns that path. An existing file is left untouched.
func InitDefault() (string, error) {
	path, err := getConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil // config exists, don't overwrite
	}

	defaults := DefaultConfig()
	if err := Save(&defaults); err != nil {
		return "", err
	}
	return path, nil
}

// Validate checks if the config has usable values
func (c *Config) Validate() error {
	if err := c.Athlete.HRZones().Validate(); err != nil {
		return fmt.Errorf("athlete heart rate settings: %w", err)
	}

	switch c.Athlete.FitnessLevel {
	case "", "beginner", "intermediate", "advanced":
	default:
		return fmt.Errorf("athlete.fitness_level must be \"beginner\", \"intermediate\", or \"advanced\", got %q", c.Athlete.FitnessLevel)
	}

	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}
	if c.Display.PaceUnit != "" && c.Display.PaceUnit != "min/km" && c.Display.PaceUnit != "min/mi" {
		return fmt.Errorf("display.pace_unit must be \"min/km\" or \"min/mi\", got %q", c.Display.PaceUnit)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainlab", "config.json"), nil
}
