package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration. Load calls it.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of sqlite, redis, memory (got %q)", c.Storage.Driver)
	}
	if c.Storage.SQLitePath == "" {
		return fmt.Errorf("storage.sqlite_path is required")
	}

	if err := c.Wheel.validate(); err != nil {
		return fmt.Errorf("wheel: %w", err)
	}

	if c.Speech.Rate <= 0 || c.Speech.Pitch <= 0 {
		return fmt.Errorf("speech.rate and speech.pitch must be > 0")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (w *WheelConfig) validate() error {
	if w.MaxPool <= 0 {
		return fmt.Errorf("max_pool must be > 0 (got %d)", w.MaxPool)
	}
	if w.CompactPool <= 0 || w.CompactPool > w.MaxPool {
		return fmt.Errorf("compact_pool must be in 1..max_pool (got %d)", w.CompactPool)
	}
	if w.Settle <= 0 {
		return fmt.Errorf("settle must be > 0 (got %v)", w.Settle)
	}
	if w.MinTurns < 0 {
		return fmt.Errorf("min_turns must be >= 0 (got %d)", w.MinTurns)
	}
	if w.JitterFraction < 0 || w.JitterFraction > 1 {
		return fmt.Errorf("jitter_fraction must be in [0, 1] (got %v)", w.JitterFraction)
	}
	return nil
}
