package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the talentflow engine
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Sim      SimConfig
	Seed     SeedConfig
	Closer   CloserConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds PostgreSQL configuration. An empty DSN selects the
// in-memory store.
type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds the optional change-event bridge configuration. An
// empty address disables the bridge.
type RedisConfig struct {
	Address  string
	Password string
}

// SimConfig holds request-simulator tuning
type SimConfig struct {
	LatencyMin time.Duration
	LatencyMax time.Duration
	ErrorRate  float64
	Seed       int64
}

// SeedConfig holds demo-data seeding configuration
type SeedConfig struct {
	Enabled bool
	Dir     string
}

// CloserConfig holds the close-date worker configuration
type CloserConfig struct {
	Interval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			DSN:          getEnv("DATABASE_DSN", ""),
			MaxOpenConns: getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Sim: SimConfig{
			LatencyMin: getEnvAsDuration("SIM_LATENCY_MIN", 200*time.Millisecond),
			LatencyMax: getEnvAsDuration("SIM_LATENCY_MAX", 1200*time.Millisecond),
			ErrorRate:  getEnvAsFloat("SIM_ERROR_RATE", 0.08),
			Seed:       getEnvAsInt64("SIM_SEED", 0),
		},
		Seed: SeedConfig{
			Enabled: getEnvAsBool("SEED_ENABLED", true),
			Dir:     getEnv("SEED_DIR", ""),
		},
		Closer: CloserConfig{
			Interval: getEnvAsDuration("CLOSE_INTERVAL", 5*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Sim.LatencyMin < 0 || c.Sim.LatencyMax < c.Sim.LatencyMin {
		return fmt.Errorf("invalid latency range: [%s, %s]", c.Sim.LatencyMin, c.Sim.LatencyMax)
	}

	if c.Sim.ErrorRate < 0 || c.Sim.ErrorRate > 1 {
		return fmt.Errorf("invalid error rate: %f", c.Sim.ErrorRate)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
