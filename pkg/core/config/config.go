package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
)

// EnvConfigPath names the environment variable pointing at the config file
const EnvConfigPath = "MINILANG_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
}

// EngineConfig holds front end limits
type EngineConfig struct {
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
}

// StoreConfig holds run history settings. Checks are recorded only when
// Enabled is set.
type StoreConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// CacheConfig holds analysis cache settings
type CacheConfig struct {
	MaxItems int      `toml:"max_items" yaml:"max_items"`
	TTL      Duration `toml:"ttl" yaml:"ttl"`
}

// ServerConfig holds the network endpoints of the analysis service
type ServerConfig struct {
	Host            string   `toml:"host" yaml:"host"`
	GRPCPort        int      `toml:"grpc_port" yaml:"grpc_port"`
	HTTPPort        int      `toml:"http_port" yaml:"http_port"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.Newf("config file not found: %s", path).
				WithCode(mdwerror.CodeMissingConfig).
				WithDetail("path", path)
		}
		return nil, mdwerror.Wrap(err, "read config").WithCode(mdwerror.CodeConfigError)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "failed to parse config").WithCode(mdwerror.CodeInvalidConfig)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "failed to parse config").WithCode(mdwerror.CodeInvalidConfig)
		}
	default:
		return nil, mdwerror.Newf("unsupported config format %q", ext).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from MINILANG_CONFIG or a default
// location. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			"./config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/minilang/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "minilang"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}

	// Engine
	if c.Engine.MaxInputLength == 0 {
		c.Engine.MaxInputLength = 1 << 20
	}

	// Store
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.General.DataDir, "runs.db")
	}

	// Cache
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 256
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 10 * time.Minute
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9300
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8300
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return mdwerror.Newf("invalid value for %s: %v", field, value).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("field", field)
	}
	if c.Engine.MaxInputLength < 0 {
		return invalid("engine.max_input_length", c.Engine.MaxInputLength)
	}
	if c.Cache.MaxItems < 0 {
		return invalid("cache.max_items", c.Cache.MaxItems)
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return invalid("server.grpc_port", c.Server.GRPCPort)
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return invalid("server.http_port", c.Server.HTTPPort)
	}
	return nil
}

// GRPCAddress returns host:port of the gRPC listener
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

// HTTPAddress returns host:port of the HTTP listener
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}
