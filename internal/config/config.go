// Package config loads service settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port     string `mapstructure:"PORT"`
	GRPCPort string `mapstructure:"GRPC_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Data; an empty DataDir serves the embedded profiles and tuning files
	DataDir string `mapstructure:"DATA_DIR"`

	// Persistence
	StateStore string `mapstructure:"STATE_STORE"` // "json" | "sqlite"
	StatePath  string `mapstructure:"STATE_PATH"`

	// Engine
	RNGSeed              uint64        `mapstructure:"RNG_SEED"` // 0 = crypto source
	TuningReloadInterval time.Duration `mapstructure:"TUNING_RELOAD_INTERVAL"`

	// Simulation
	SimTrials int `mapstructure:"SIM_TRIALS"`
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// LoadConfig reads .env from the working directory or its parent, then the
// environment. A missing .env is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("PORT", "8080")
	v.SetDefault("GRPC_PORT", "9090")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DATA_DIR", "")
	v.SetDefault("STATE_STORE", "json")
	v.SetDefault("STATE_PATH", "game-state.json")
	v.SetDefault("RNG_SEED", 0)
	v.SetDefault("TUNING_RELOAD_INTERVAL", "2s")
	v.SetDefault("SIM_TRIALS", 300000)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.StateStore) {
	case "json", "sqlite":
		c.StateStore = strings.ToLower(c.StateStore)
	default:
		return fmt.Errorf("STATE_STORE must be json or sqlite, got %q", c.StateStore)
	}
	if c.StatePath == "" {
		return fmt.Errorf("STATE_PATH is required")
	}
	if c.SimTrials <= 0 {
		return fmt.Errorf("SIM_TRIALS must be positive")
	}
	if c.TuningReloadInterval < 0 {
		return fmt.Errorf("TUNING_RELOAD_INTERVAL must not be negative")
	}
	return nil
}
