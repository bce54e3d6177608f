package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar points at an optional YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Log       LogConfig       `koanf:"log"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type LogConfig struct {
	Level      string `koanf:"level" validate:"oneof=trace debug info warn error"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `koanf:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"gte=0"`
}

type RecommendConfig struct {
	RulesPath   string        `koanf:"rules_path" validate:"required"`
	AliasesPath string        `koanf:"aliases_path"`
	Target      int           `koanf:"target" validate:"gte=1,lte=100"`
	Popularity  string        `koanf:"popularity" validate:"oneof=score sales"`
	SalesWindow time.Duration `koanf:"sales_window" validate:"gt=0"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
}

type BreakerConfig struct {
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"gte=1"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Log: LogConfig{
			Level:      "info",
			File:       "logs/app.log",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Recommend: RecommendConfig{
			RulesPath:   "data/rules.json",
			Target:      20,
			Popularity:  "score",
			SalesWindow: 30 * 24 * time.Hour,
			Timeout:     5 * time.Second,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			Timeout:          30 * time.Second,
		},
	}
}

// envMappings maps environment variables to config paths.
var envMappings = map[string]string{
	"server_addr":               "server.addr",
	"database_url":              "database.url",
	"jwt_secret":                "auth.jwt_secret",
	"log_level":                 "log.level",
	"log_file":                  "log.file",
	"log_max_size_mb":           "log.max_size_mb",
	"log_max_backups":           "log.max_backups",
	"log_max_age_days":          "log.max_age_days",
	"rules_path":                "recommend.rules_path",
	"aliases_path":              "recommend.aliases_path",
	"recommend_target":          "recommend.target",
	"recommend_popularity":      "recommend.popularity",
	"recommend_sales_window":    "recommend.sales_window",
	"recommend_timeout":         "recommend.timeout",
	"breaker_failure_threshold": "breaker.failure_threshold",
	"breaker_timeout":           "breaker.timeout",
}

// envTransformFunc returns "" for variables the config does not know, which
// makes the env provider skip them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load reads .env, then layers defaults, an optional YAML file and the
// environment, in increasing priority.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
