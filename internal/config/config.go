package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Finder names accepted in search.finders.
const (
	FinderNibl = "nibl"
	FinderMock = "mock"
)

// Output formats accepted in search.output.
const (
	OutputTable = "table"
	OutputPlain = "plain"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config holds all application configuration.
type Config struct {
	Nibl    NiblConfig    `mapstructure:"nibl" yaml:"nibl"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// NiblConfig holds nibl API configuration.
type NiblConfig struct {
	BaseURL         string `mapstructure:"base_url" yaml:"base_url"`
	Timeout         int    `mapstructure:"timeout" yaml:"timeout"` // seconds
	ConcurrentFetch bool   `mapstructure:"concurrent_fetch" yaml:"concurrent_fetch"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	Finders    []string `mapstructure:"finders" yaml:"finders"`
	Resolution string   `mapstructure:"resolution" yaml:"resolution"`
	Output     string   `mapstructure:"output" yaml:"output"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	Path       string `mapstructure:"path" yaml:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Nibl: NiblConfig{
			BaseURL: "https://api.nibl.co.uk/nibl",
			Timeout: 30,
		},
		Search: SearchConfig{
			Finders: []string{FinderNibl},
			Output:  OutputTable,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8089,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > .env file > config file > defaults
func Load(configPath string) (*Config, error) {
	// Values from .env never override variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.xdccfind")
	}

	v.SetEnvPrefix("XDCCFIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("nibl.base_url", d.Nibl.BaseURL)
	v.SetDefault("nibl.timeout", d.Nibl.Timeout)
	v.SetDefault("nibl.concurrent_fetch", d.Nibl.ConcurrentFetch)

	v.SetDefault("search.finders", d.Search.Finders)
	v.SetDefault("search.resolution", d.Search.Resolution)
	v.SetDefault("search.output", d.Search.Output)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", d.Logging.Path)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Nibl.BaseURL) == "" {
		return errors.New("nibl.base_url must not be empty")
	}
	if c.Nibl.Timeout <= 0 {
		return fmt.Errorf("nibl.timeout must be positive, got %d", c.Nibl.Timeout)
	}
	if len(c.Search.Finders) == 0 {
		return errors.New("search.finders must list at least one finder")
	}
	for _, name := range c.Search.Finders {
		if !IsKnownFinder(name) {
			return fmt.Errorf("unknown finder %q in search.finders", name)
		}
	}
	if !IsKnownOutput(c.Search.Output) {
		return fmt.Errorf("unknown output format %q", c.Search.Output)
	}
	return nil
}

// IsKnownFinder reports whether name is a supported finder.
func IsKnownFinder(name string) bool {
	return name == FinderNibl || name == FinderMock
}

// IsKnownOutput reports whether format is a supported output format.
func IsKnownOutput(format string) bool {
	switch format {
	case OutputTable, OutputPlain, OutputJSON, OutputYAML:
		return true
	}
	return false
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
