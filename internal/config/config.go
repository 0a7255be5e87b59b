// Package config provides configuration loading for tio.
// It supports a layered approach with priority:
// environment variables (TIO_*) > config file (~/.tio.yaml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tio configuration options. The API keys themselves live
// in a separate file (see the creds package); only its location is
// configured here.
type Config struct {
	BaseURL         string        `mapstructure:"base_url" yaml:"base_url"`
	CredentialsFile string        `mapstructure:"credentials_file" yaml:"credentials_file"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		BaseURL:         "https://cloud.tenable.com",
		CredentialsFile: DefaultCredentialsPath(),
		Timeout:         30 * time.Second,
	}
}

// Load reads configuration from ~/.tio.yaml and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".tio")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("TIO")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	v.SetEnvPrefix("TIO")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// DefaultCredentialsPath returns the per-user credential file location
// (~/.tio/client.json).
func DefaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tio", "client.json")
	}
	return filepath.Join(home, ".tio", "client.json")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "https://cloud.tenable.com")
	v.SetDefault("credentials_file", DefaultCredentialsPath())
	v.SetDefault("timeout", 30*time.Second)
}
