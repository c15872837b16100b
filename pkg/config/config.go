package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the carrent configuration. Store file locations are
// configuration, never hard-coded constants.
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Files   Files   `yaml:"files"`
	Logging Logging `yaml:"logging"`
}

// Files names the four store files, relative to DataDir.
type Files struct {
	Users   string `yaml:"users"`
	Cars    string `yaml:"cars"`
	Rentals string `yaml:"rentals"`
	Counter string `yaml:"counter"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Files: Files{
			Users:   "registered_users.bin",
			Cars:    "cars.bin",
			Rentals: "rentals.bin",
			Counter: "highest_recorded_number.txt",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// UsersPath returns the path of the user store file.
func (c *Config) UsersPath() string { return filepath.Join(c.DataDir, c.Files.Users) }

// CarsPath returns the path of the car store file.
func (c *Config) CarsPath() string { return filepath.Join(c.DataDir, c.Files.Cars) }

// RentalsPath returns the path of the rental ledger file.
func (c *Config) RentalsPath() string { return filepath.Join(c.DataDir, c.Files.Rentals) }

// CounterPath returns the path of the sequence counter side file.
func (c *Config) CounterPath() string { return filepath.Join(c.DataDir, c.Files.Counter) }

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig creates and saves a fresh configuration if none exists at
// configPath, returning the resulting configuration either way.
func BootstrapConfig(configPath, dataDir string) (*Config, error) {
	if ConfigExists(configPath) {
		return LoadConfig(configPath)
	}

	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./carrent.yaml"
	}

	// For Linux/macOS, use ~/.config/carrent/config.yaml
	configDir := filepath.Join(homeDir, ".config", "carrent")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
