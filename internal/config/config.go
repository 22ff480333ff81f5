// Package config loads service settings from flags, environment and an optional
// YAML file through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/codyseavey/zhja-translate/internal/services"
)

const (
	EnvPrefix = "ZHJA"

	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Translate TranslateConfig `mapstructure:"translate"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MetricsInterval time.Duration `mapstructure:"metrics_interval"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

type StoreConfig struct {
	Backend       string        `mapstructure:"backend"`
	SQLitePath    string        `mapstructure:"sqlite_path"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

type GatewayConfig struct {
	Provider        string        `mapstructure:"provider"`
	APIKey          string        `mapstructure:"api_key"`
	APIKeyFile      string        `mapstructure:"api_key_file"`
	BaseURL         string        `mapstructure:"base_url"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

type TranslateConfig struct {
	MaxLength int `mapstructure:"max_length"`
}

// SetDefaults registers every key so environment overrides are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.metrics_interval", 30*time.Second)

	v.SetDefault("log.debug", false)

	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.sqlite_path", "data/zhja-translate.db")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.cache_ttl", time.Duration(0))

	v.SetDefault("gateway.provider", services.ProviderDeepSeek)
	v.SetDefault("gateway.api_key", "")
	v.SetDefault("gateway.api_key_file", "")
	v.SetDefault("gateway.base_url", "")
	v.SetDefault("gateway.model", "")
	v.SetDefault("gateway.timeout", 30*time.Second)
	v.SetDefault("gateway.breaker_failures", 5)
	v.SetDefault("gateway.breaker_timeout", 30*time.Second)

	v.SetDefault("translate.max_length", services.DefaultMaxTextLength)
}

// Load reads configuration into a Config. cfgFile may be empty, in which case
// ./zhja-translate.yaml and /etc/zhja-translate/zhja-translate.yaml are tried.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The upstream-standard variable works without the prefix
	if err := v.BindEnv("gateway.api_key", EnvPrefix+"_GATEWAY_API_KEY", "DEEPSEEK_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("zhja-translate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/zhja-translate")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Gateway.APIKey == "" && cfg.Gateway.APIKeyFile != "" {
		key, err := os.ReadFile(cfg.Gateway.APIKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read api key file: %w", err)
		}
		cfg.Gateway.APIKey = strings.TrimSpace(string(key))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server.mode %q (want debug, release or test)", c.Server.Mode)
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("store.sqlite_path must be set for the sqlite backend")
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("store.redis_addr must be set for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store.backend %q (want memory, sqlite or redis)", c.Store.Backend)
	}
	if c.Store.CacheTTL < 0 {
		return errors.New("store.cache_ttl must not be negative")
	}

	if !services.IsKnownProvider(c.Gateway.Provider) {
		return fmt.Errorf("unknown gateway.provider %q", c.Gateway.Provider)
	}
	if c.Translate.MaxLength <= 0 {
		return fmt.Errorf("translate.max_length must be positive, got %d", c.Translate.MaxLength)
	}
	return nil
}

// GatewaySettings maps the gateway section onto services.GatewayConfig.
func (c *Config) GatewaySettings() services.GatewayConfig {
	return services.GatewayConfig{
		Provider:        c.Gateway.Provider,
		APIKey:          c.Gateway.APIKey,
		BaseURL:         c.Gateway.BaseURL,
		Model:           c.Gateway.Model,
		Timeout:         c.Gateway.Timeout,
		BreakerFailures: c.Gateway.BreakerFailures,
		BreakerTimeout:  c.Gateway.BreakerTimeout,
	}
}
