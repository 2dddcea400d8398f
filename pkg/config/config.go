// Package config provides a way to configure the application.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// LoadDotenv loads environment variables from the cascading set of `.env`
// locations. godotenv never overrides variables that are already set, so
// earlier files (and the real environment) win over later ones.
func LoadDotenv() {
	for _, path := range dotenvPaths() {
		_ = godotenv.Load(path)
	}
}

func dotenvPaths() []string {
	paths := []string{".env.local", ".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "firescout", ".env"))
	}
	return paths
}

// Load builds the configuration: cascading `.env` files first, then an
// optional YAML file (CONFIG_FILE); the environment fills whatever the
// file leaves unset.
func Load(ctx context.Context) (*Config, error) {
	LoadDotenv()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := LoadFromYAML(path)
		if err != nil {
			return nil, fmt.Errorf("loading configuration from %s: %w", path, err)
		}
		cfg = loaded
	}

	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("FIRECRAWL_API_URL must not be empty")
	}
	switch c.API.Version {
	case APIVersionV0, APIVersionV1:
	default:
		return fmt.Errorf("unexpected API version: %q", c.API.Version)
	}
	switch c.Output.Format {
	case OutputFormatPretty, OutputFormatJSON, OutputFormatMarkdown:
	default:
		return fmt.Errorf("unexpected output format: %q", c.Output.Format)
	}
	return nil
}
