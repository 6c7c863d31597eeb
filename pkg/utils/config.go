package utils

import (
	"maps"
	"strconv"
	"sync"
	"time"
)

// Config is a thread-safe view over environment-style key/value settings
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config holding a copy of the provided values
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv creates a new Config from the process environment after loading
// the given .env files
func NewConfigFromEnv(files ...string) *Config {
	return NewConfig(LoadEnv(files...))
}

// Get retrieves a configuration value by key
// Returns empty string if key doesn't exist
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetWithDefault retrieves a configuration value by key with a fallback default
func (c *Config) GetWithDefault(key, defaultValue string) string {
	if value := c.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// First returns the first non-empty value among keys, in order
func (c *Config) First(keys ...string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range keys {
		if value := c.values[key]; value != "" {
			return value
		}
	}
	return ""
}

// GetBool retrieves a configuration value as a boolean
// Returns false if key doesn't exist or cannot be parsed as boolean
func (c *Config) GetBool(key string) bool {
	value := c.Get(key)
	if value == "" {
		return false
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		switch value {
		case "yes", "on", "enabled":
			return true
		default:
			return false
		}
	}
	return parsed
}

// GetBoolWithDefault retrieves a boolean, returning defaultValue when the key is unset
func (c *Config) GetBoolWithDefault(key string, defaultValue bool) bool {
	if !c.Has(key) {
		return defaultValue
	}
	return c.GetBool(key)
}

// GetIntWithDefault retrieves an integer, returning defaultValue when the key is unset or malformed
func (c *Config) GetIntWithDefault(key string, defaultValue int) int {
	value := c.Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDurationWithDefault parses a value such as "30s" or "15m".
// Returns defaultValue when the key is unset or malformed
func (c *Config) GetDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := c.Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// Set modifies a configuration value
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.values[key]
	return exists
}

// Clone creates a deep copy of the config
func (c *Config) Clone() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return NewConfig(c.values)
}
