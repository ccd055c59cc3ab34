package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"cell-dashboard/internal/sim"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Session    SessionConfig    `yaml:"session"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	Env       string `yaml:"env"` // "production" switches gin to release mode
	StaticDir string `yaml:"static_dir"`
}

type SessionConfig struct {
	// TTLMinutes is how long an idle session keeps its ledger before the
	// store sweeps it.
	TTLMinutes int `yaml:"ttl_minutes"`
}

type SimulationConfig struct {
	// MaxCells caps a single generate request. Defaults to the slider max.
	MaxCells int `yaml:"max_cells"`
	// Temperature draw range in °C.
	TempMinC float64 `yaml:"temp_min_c"`
	TempMaxC float64 `yaml:"temp_max_c"`
	// HistogramBins for the temperature chart.
	HistogramBins int `yaml:"histogram_bins"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8080",
			StaticDir: "./web/dist",
		},
		Session: SessionConfig{
			TTLMinutes: 60,
		},
		Simulation: SimulationConfig{
			MaxCells:      sim.MaxCells,
			TempMinC:      sim.DefaultTempMinC,
			TempMaxC:      sim.DefaultTempMaxC,
			HistogramBins: 10,
		},
	}
}

// Load reads a YAML config, fills defaults for omitted fields, and validates.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadOrDefault is Load, except a missing file yields the defaults. Any other
// read or parse failure is still an error.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// applyDefaults backfills zero values left by a partial YAML document.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Port == "" {
		c.Server.Port = d.Server.Port
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = d.Server.StaticDir
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = d.Session.TTLMinutes
	}
	if c.Simulation.MaxCells == 0 {
		c.Simulation.MaxCells = d.Simulation.MaxCells
	}
	if c.Simulation.TempMinC == 0 && c.Simulation.TempMaxC == 0 {
		c.Simulation.TempMinC = d.Simulation.TempMinC
		c.Simulation.TempMaxC = d.Simulation.TempMaxC
	}
	if c.Simulation.HistogramBins == 0 {
		c.Simulation.HistogramBins = d.Simulation.HistogramBins
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Session.TTLMinutes < 0 {
		return errors.New("session.ttl_minutes must be >= 0")
	}
	if c.Simulation.MaxCells < 1 || c.Simulation.MaxCells > sim.MaxCells {
		return fmt.Errorf("simulation.max_cells must be in [1, %d]", sim.MaxCells)
	}
	if c.Simulation.TempMinC >= c.Simulation.TempMaxC {
		return errors.New("simulation.temp_min_c must be < simulation.temp_max_c")
	}
	if c.Simulation.HistogramBins < 1 {
		return errors.New("simulation.histogram_bins must be >= 1")
	}
	return nil
}

// SessionTTL returns the session TTL as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}
