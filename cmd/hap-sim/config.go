package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hap-protocol/hap-go/pkg/catalog"
	"github.com/hap-protocol/hap-go/pkg/characteristics"
	"github.com/hap-protocol/hap-go/pkg/interaction"
	"gopkg.in/yaml.v3"
)

// Config holds the simulator configuration.
type Config struct {
	LogLevel     string        `yaml:"log_level"`
	EventLog     string        `yaml:"event_log"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Simulate     bool          `yaml:"simulate"`
	Interval     time.Duration `yaml:"interval"`

	Fan        FanConfig        `yaml:"fan"`
	CO2        CO2Config        `yaml:"co2"`
	AirQuality AirQualityConfig `yaml:"air_quality"`
}

// FanConfig is the initial fan state.
type FanConfig struct {
	Active  bool          `yaml:"active"`
	Speed   float64       `yaml:"speed"`
	Auto    bool          `yaml:"auto"`
	Latency time.Duration `yaml:"latency"`
}

// CO2Config is the initial carbon dioxide sensor state.
type CO2Config struct {
	Level     float64 `yaml:"level"`
	Threshold float64 `yaml:"threshold"`
}

// AirQualityConfig is the initial air quality sensor state.
type AirQualityConfig struct {
	Quality string `yaml:"quality"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel:     "info",
		ReadTimeout:  interaction.DefaultReadTimeout,
		WriteTimeout: interaction.DefaultWriteTimeout,
		Interval:     2 * time.Second,
		Fan:          FanConfig{Speed: 50},
		CO2:          CO2Config{Level: 600, Threshold: 1000},
		AirQuality:   AirQualityConfig{Quality: "GOOD"},
	}
}

// LoadConfig reads a YAML configuration file over the defaults. An empty
// path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against the characteristic formats.
func (c *Config) Validate() error {
	var errs []error

	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read_timeout must be positive, got %s", c.ReadTimeout))
	}
	if c.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("write_timeout must be positive, got %s", c.WriteTimeout))
	}
	if c.Simulate && c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if c.Fan.Latency < 0 {
		errs = append(errs, fmt.Errorf("fan.latency must not be negative, got %s", c.Fan.Latency))
	}

	speed := catalog.MustCharacteristic(characteristics.KindRotationSpeed).ValueFormat()
	if err := speed.Validate(c.Fan.Speed); err != nil {
		errs = append(errs, fmt.Errorf("fan.speed: %w", err))
	}
	level := catalog.MustCharacteristic(characteristics.KindCarbonDioxideLevel).ValueFormat()
	if err := level.Validate(c.CO2.Level); err != nil {
		errs = append(errs, fmt.Errorf("co2.level: %w", err))
	}
	if _, err := c.AirQualityState(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// AirQualityState resolves the configured quality name.
func (c *Config) AirQualityState() (characteristics.AirQualityState, error) {
	states := catalog.MustCharacteristic(characteristics.KindAirQuality).States
	for i, name := range states {
		if strings.EqualFold(name, c.AirQuality.Quality) {
			return characteristics.AirQualityState(i), nil
		}
	}
	return 0, fmt.Errorf("air_quality.quality: unknown state %q (valid: %s)",
		c.AirQuality.Quality, strings.Join(states, ", "))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
