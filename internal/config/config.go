package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Instance InstanceConfig
	Animal   AnimalConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host        string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port        int    `env:"SERVER_PORT" envDefault:"8000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`
}

// InstanceConfig holds the public identity of this deployment and the
// peer trust policy.
type InstanceConfig struct {
	// InstanceURL is the public URL other FurNet instances use to reach
	// this one. It is normalized before use, so "example.com:8080/" and
	// "https://example.com:8080" are equivalent.
	InstanceURL string `env:"INSTANCE_URL" envDefault:"http://localhost:8000"`

	// TrustedDomain is the hostname suffix a peer must match to be
	// accepted as a friend. Empty admits every host.
	TrustedDomain string `env:"TRUSTED_DOMAIN"`
}

// AnimalConfig holds the animal identity of this instance. Workshop
// participants override these via environment variables to personalize
// their animal.
type AnimalConfig struct {
	Name        string `env:"ANIMAL_NAME" envDefault:"Rusty"`
	Species     string `env:"ANIMAL_SPECIES" envDefault:"Red Panda"`
	Description string `env:"ANIMAL_DESCRIPTION" envDefault:"A curious and playful red panda who loves to explore"`
	Habitat     string `env:"ANIMAL_HABITAT" envDefault:"Bamboo forests of the Himalayas"`
	Diet        string `env:"ANIMAL_DIET" envDefault:"Bamboo, fruits, and occasional insects"`
	FunFact     string `env:"ANIMAL_FUN_FACT" envDefault:"Red pandas use their bushy tails as blankets in cold weather"`
	Emoji       string `env:"ANIMAL_EMOJI" envDefault:"🐼"`
	Color       string `env:"ANIMAL_COLOR" envDefault:"rust-red"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("parsing server config: %w", err)
	}
	if err := env.Parse(&cfg.Instance); err != nil {
		return nil, fmt.Errorf("parsing instance config: %w", err)
	}
	if err := env.Parse(&cfg.Animal); err != nil {
		return nil, fmt.Errorf("parsing animal config: %w", err)
	}

	return cfg, nil
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CORSOriginList returns the configured CORS origins as a slice.
func (c *ServerConfig) CORSOriginList() []string {
	if c.CORSOrigins == "" {
		return nil
	}
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Instance.InstanceURL == "" {
		return fmt.Errorf("INSTANCE_URL is required")
	}
	if c.Animal.Name == "" {
		return fmt.Errorf("ANIMAL_NAME is required")
	}
	if c.Animal.Species == "" {
		return fmt.Errorf("ANIMAL_SPECIES is required")
	}
	return nil
}
