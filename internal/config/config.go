// Package config handles configuration loading for mocksmith.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig represents mock server defaults.
type ServerConfig struct {
	Name   string `mapstructure:"name"`
	Port   int    `mapstructure:"port"`
	Prefix string `mapstructure:"prefix"`
	Delay  string `mapstructure:"delay"`
}

// AuthConfig represents the shared-secret auth gate defaults.
type AuthConfig struct {
	Token  string `mapstructure:"token"`
	Header string `mapstructure:"header"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from files and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	v.AddConfigPath("./mocksmith")

	// Add user config directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "mocksmith"))
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("MOCKSMITH")
	v.AutomaticEnv()

	// Also support direct env var names
	v.BindEnv("server.name", "MOCKSMITH_NAME")
	v.BindEnv("server.port", "MOCKSMITH_PORT")
	v.BindEnv("server.prefix", "MOCKSMITH_PREFIX")
	v.BindEnv("server.delay", "MOCKSMITH_DELAY")
	v.BindEnv("auth.token", "MOCKSMITH_TOKEN")
	v.BindEnv("auth.header", "MOCKSMITH_AUTH_HEADER")
	v.BindEnv("logging.level", "MOCKSMITH_LOG_LEVEL")

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.name", "MockServer")
	v.SetDefault("server.port", 3005)
	v.SetDefault("server.prefix", "")
	v.SetDefault("server.delay", "")

	// Auth defaults
	v.SetDefault("auth.token", "")
	v.SetDefault("auth.header", "authorization")

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	configDir := filepath.Join(homeDir, ".config", "mocksmith")
	return os.MkdirAll(configDir, 0755)
}
