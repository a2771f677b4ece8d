// Package config loads weft's per-project configuration file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the weft configuration
type Config struct {
	// RootNamespace overrides the root namespace read from the project
	// file. Empty means "use the project's own".
	RootNamespace string `mapstructure:"root_namespace"`

	Database  DatabaseConfig  `mapstructure:"database"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	// Provider is the default database provider for new data contexts.
	Provider string `mapstructure:"provider"`

	// URL is the connection string used when reverse-engineering a model
	// shape from a live table.
	URL string `mapstructure:"url"`
}

// GeneratorConfig represents template-emission configuration
type GeneratorConfig struct {
	// ModelsDir is the directory, relative to the project root, where new
	// model files are placed.
	ModelsDir string `mapstructure:"models_dir"`

	// Overwrite allows the emitter to replace existing files.
	Overwrite bool `mapstructure:"overwrite"`
}

// Load reads weft.yml or weft.yaml from the given project directory,
// falling back to defaults when no file exists.
func Load(dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("database.provider", "sqlite")
	v.SetDefault("generator.models_dir", "Models")
	v.SetDefault("generator.overwrite", false)

	v.SetConfigName("weft")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Enable environment variable support
	v.SetEnvPrefix("WEFT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig rejects values the pipeline cannot work with.
func validateConfig(cfg *Config) error {
	switch cfg.Database.Provider {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database provider %q (supported: sqlite, postgres)", cfg.Database.Provider)
	}
	return nil
}
