package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default values.
const (
	DefaultDocAPIURL = "https://api.gdeltproject.org/api/v2/doc/doc"
	DefaultGeoAPIURL = "https://api.gdeltproject.org/api/v2/geo/geo"
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "info"
	DefaultHTTPAddr  = ":8080"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// ThemeConfig holds terminal rendering options.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset" toml:"preset"`
	MarkdownStyle string `mapstructure:"markdown_style" toml:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	DocAPIURL    string        `mapstructure:"doc_api_url"`
	GeoAPIURL    string        `mapstructure:"geo_api_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	LogLevel     string        `mapstructure:"log_level"`
	OTelEndpoint string        `mapstructure:"otel_endpoint"`
	HTTPAddr     string        `mapstructure:"http_addr"`
	Theme        ThemeConfig   `mapstructure:"theme"`
}

// DefaultConfigDir returns the default config directory (~/.gdeltctl/).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".gdeltctl")
	}
	return filepath.Join(home, ".gdeltctl")
}

// Load reads configuration from a .env file, the config file, environment
// variables and defaults, in increasing order of precedence below flags.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()

	// Defaults
	v.SetDefault("doc_api_url", DefaultDocAPIURL)
	v.SetDefault("geo_api_url", DefaultGeoAPIURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("user_agent", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("otel_endpoint", "")
	v.SetDefault("http_addr", DefaultHTTPAddr)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "gdeltctl"))
		}
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: GDELTCTL_TIMEOUT, GDELTCTL_THEME_PRESET, etc.
	v.SetEnvPrefix("GDELTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("log_level must be one of %s, got %q", strings.Join(logLevels, ", "), c.LogLevel)
	}
	if c.DocAPIURL == "" || c.GeoAPIURL == "" {
		return errors.New("doc_api_url and geo_api_url must be set")
	}
	return nil
}

// fileView is the TOML shape of Config; durations are written as strings.
type fileView struct {
	DocAPIURL    string      `toml:"doc_api_url"`
	GeoAPIURL    string      `toml:"geo_api_url"`
	Timeout      string      `toml:"timeout"`
	UserAgent    string      `toml:"user_agent"`
	LogLevel     string      `toml:"log_level"`
	OTelEndpoint string      `toml:"otel_endpoint"`
	HTTPAddr     string      `toml:"http_addr"`
	Theme        ThemeConfig `toml:"theme"`
}

// WriteTOML writes c in config file form.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(fileView{
		DocAPIURL:    c.DocAPIURL,
		GeoAPIURL:    c.GeoAPIURL,
		Timeout:      c.Timeout.String(),
		UserAgent:    c.UserAgent,
		LogLevel:     c.LogLevel,
		OTelEndpoint: c.OTelEndpoint,
		HTTPAddr:     c.HTTPAddr,
		Theme:        c.Theme,
	})
}
