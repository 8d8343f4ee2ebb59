package config

import (
	"fmt"
	"os"

	"iex-insight/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyDefaults fills optional fields the YAML may omit.
func (c *Config) applyDefaults() {
	if c.Session.TTLMinutes <= 0 {
		c.Session.TTLMinutes = 30
	}
	if c.Session.MaxMessages <= 0 {
		c.Session.MaxMessages = 20
	}
	if c.Forecast.WindowSize <= 0 {
		c.Forecast.WindowSize = 7
	}
	if c.Forecast.DefaultHorizon <= 0 {
		c.Forecast.DefaultHorizon = 7
	}
	if c.Forecast.ConfidenceLevel <= 0 {
		c.Forecast.ConfidenceLevel = 0.95
	}
	if c.Forecast.TimeoutSeconds <= 0 {
		c.Forecast.TimeoutSeconds = 10
	}
	if c.Query.DefaultLimit <= 0 {
		c.Query.DefaultLimit = 50
	}
	if c.Query.MaxLimit <= 0 {
		c.Query.MaxLimit = 1000
	}
	if c.Dataset.BadRowThreshold <= 0 {
		c.Dataset.BadRowThreshold = 0.01
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "sqlite"
	}
	if c.Storage.RetentionDays <= 0 {
		c.Storage.RetentionDays = 90
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Dataset configuration
	if c.Dataset.CSVPath == "" {
		return fmt.Errorf("dataset csv path cannot be empty")
	}
	if c.Dataset.BadRowThreshold >= 1 {
		return fmt.Errorf("bad row threshold must be below 1.0, got %v", c.Dataset.BadRowThreshold)
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unknown database type: %s", c.Storage.DBType)
	}

	// Validate Forecast configuration
	if c.Forecast.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence level must be below 1.0, got %v", c.Forecast.ConfidenceLevel)
	}
	if c.Forecast.DefaultHorizon > 90 {
		return fmt.Errorf("forecast horizon capped at 90 days, got %d", c.Forecast.DefaultHorizon)
	}

	// Validate Query configuration
	if c.Query.DefaultLimit > c.Query.MaxLimit {
		return fmt.Errorf("default limit %d exceeds max limit %d", c.Query.DefaultLimit, c.Query.MaxLimit)
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
