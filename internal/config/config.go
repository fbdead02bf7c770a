package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Arena holds all configuration for the arena simulator.
type Arena struct {
	LogLevel string `yaml:"log_level"`

	// Database (battle records). Disabled by default.
	Database DatabaseConfig `yaml:"database"`

	// Battle rules
	Battle Battle `yaml:"battle"`

	// Simulation run
	Simulation Simulation `yaml:"simulation"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Simulation describes a batch of battles run by cmd/arena.
type Simulation struct {
	Battles     int      `yaml:"battles"`
	Concurrency int      `yaml:"concurrency"`
	Seed        uint64   `yaml:"seed"` // 0 = unseeded
	Catalog     string   `yaml:"catalog"`
	Team1       []string `yaml:"team1"`
	Team2       []string `yaml:"team2"`
	Level       int      `yaml:"level"` // campaign level fought instead of team2, 0 = off
}

// DefaultArena returns Arena config with sensible defaults.
func DefaultArena() Arena {
	return Arena{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "legendarena",
			Password: "legendarena",
			DBName:   "legendarena",
			SSLMode:  "disable",
		},
		Battle: DefaultBattle(),
		Simulation: Simulation{
			Battles:     10,
			Concurrency: 4,
			Team1:       []string{"Salamander", "Undine", "Sylph"},
			Team2:       []string{"Golem", "Wraith", "Seraph"},
		},
	}
}

// LoadArena loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values the engine cannot run with.
func (a Arena) Validate() error {
	if err := a.Battle.Validate(); err != nil {
		return fmt.Errorf("battle: %w", err)
	}
	if a.Simulation.Battles < 0 {
		return fmt.Errorf("simulation.battles must not be negative, got %d", a.Simulation.Battles)
	}
	if a.Simulation.Concurrency < 1 {
		return fmt.Errorf("simulation.concurrency must be at least 1, got %d", a.Simulation.Concurrency)
	}
	if a.Simulation.Level < 0 {
		return fmt.Errorf("simulation.level must not be negative, got %d", a.Simulation.Level)
	}
	if a.Simulation.Battles > 0 {
		if len(a.Simulation.Team1) == 0 {
			return fmt.Errorf("simulation.team1 is empty")
		}
		if len(a.Simulation.Team2) == 0 && a.Simulation.Level == 0 {
			return fmt.Errorf("simulation needs team2 or level")
		}
	}
	return nil
}
