package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server ServerConfig `toml:"server"`
	OAuth  OAuthConfig  `toml:"oauth"`
	Page   PageConfig   `toml:"page"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	CallbackPath    string        `toml:"callback_path"`
	RateLimit       float64       `toml:"rate_limit"`
	RateBurst       int           `toml:"rate_burst"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// OAuthConfig describes the provider side of the flow, used only to build authorization URLs.
type OAuthConfig struct {
	Provider   string   `toml:"provider"`
	ClientID   string   `toml:"client_id"`
	AuthURL    string   `toml:"auth_url"`
	Scopes     []string `toml:"scopes"`
	AccessType string   `toml:"access_type"`
}

// PageConfig holds the names shown to the operator on rendered pages.
type PageConfig struct {
	Service string `toml:"service"`
	Tool    string `toml:"tool"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrMissingConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfigOrDefault loads path when it exists and falls back to [DefaultConfig] otherwise.
func LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidArgument, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to path as TOML.
func SaveConfig(path string, config *Config) error {
	data, err := config.Encode()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate reports the first setting that cannot be used to start the listener.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	case !strings.HasPrefix(c.Server.CallbackPath, "/"):
		return fmt.Errorf("%w: callback_path %q must start with /", ErrInvalidConfig, c.Server.CallbackPath)
	case c.Server.RateLimit < 0:
		return fmt.Errorf("%w: rate_limit must not be negative", ErrInvalidConfig)
	case c.Server.RateLimit > 0 && c.Server.RateBurst < 1:
		return fmt.Errorf("%w: rate_burst must be at least 1 when rate_limit is set", ErrInvalidConfig)
	case c.Server.ShutdownTimeout < 0:
		return fmt.Errorf("%w: shutdown_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Addr returns the host:port pair the listener binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
