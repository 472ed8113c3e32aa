// Package config loads the application configuration: defaults first, then
// the yaml file, then environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config holds everything the quote persistence layer needs at startup.
type Config struct {
	Mongo   MongoConfig   `yaml:"mongo"`
	Routing RoutingConfig `yaml:"routing"`
	Events  EventsConfig  `yaml:"events"`
	Logging LoggingConfig `yaml:"logging"`
}

// MongoConfig locates the backing document store.
type MongoConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI"`
	Database string `yaml:"database" env:"MONGO_DATABASE"`
}

// RoutingConfig tunes filter resolution.
type RoutingConfig struct {
	// DefaultService receives documents with missing or unknown service
	// values.
	DefaultService string `yaml:"default_service" env:"ROUTING_DEFAULT_SERVICE"`

	// Strict turns an empty resolved-target set into an error instead of
	// the historical silent fallback.
	Strict bool `yaml:"strict" env:"ROUTING_STRICT"`
}

// EventsConfig selects where quote lifecycle events go.
type EventsConfig struct {
	// Provider is "none", "memory" or "nats".
	Provider string `yaml:"provider" env:"EVENTS_PROVIDER"`
	NatsURL  string `yaml:"nats_url" env:"NATS_URL"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "pcbxpress",
		},
		Routing: RoutingConfig{
			DefaultService: "pcb",
			Strict:         false,
		},
		Events: EventsConfig{
			Provider: "none",
			NatsURL:  "nats://localhost:4222",
		},
		Logging: DefaultLoggingConfig(),
	}
}

// Load reads the configuration: defaults, then the yaml file at path (if it
// exists), then environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	cfg.Logging.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the process cannot start with.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}
	switch c.Events.Provider {
	case "", "none", "memory", "nats":
	default:
		return fmt.Errorf("events.provider must be none, memory or nats, got %q", c.Events.Provider)
	}
	if c.Events.Provider == "nats" && c.Events.NatsURL == "" {
		return fmt.Errorf("events.nats_url is required when events.provider is nats")
	}
	return nil
}
