package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Valkey   ValkeyConfig
	Rules    RulesConfig
}

type AppConfig struct {
	Version     string
	Port        string
	Debug       bool
	Environment string
	BasePath    string
	BasicAuth   []string // user:secret pairs guarding the /rules routes
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB name for Postgres
}

type ValkeyConfig struct {
	Enabled   bool
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

type RulesConfig struct {
	// StaticConfig serves the built-in rule set to every workspace instead of reading the database.
	StaticConfig   bool
	LookupTimeout  time.Duration
	ConfigCacheTTL time.Duration
	IdempotencyTTL time.Duration
}

// Global provides access to the loaded configuration from the cobra commands.
var Global *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_port", "3000")
	v.SetDefault("app_debug", false)
	v.SetDefault("app_env", "development")
	v.SetDefault("app_base_path", "")
	v.SetDefault("app_basic_auth", "")

	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", filepath.Join("storages", "rules.db"))

	v.SetDefault("valkey_enabled", false)
	v.SetDefault("valkey_address", "localhost:6379")
	v.SetDefault("valkey_password", "")
	v.SetDefault("valkey_db", 0)
	v.SetDefault("valkey_key_prefix", "azrules:")

	v.SetDefault("rules_static_config", false)
	v.SetDefault("rules_lookup_timeout_ms", 3000)
	v.SetDefault("rules_config_cache_ttl_seconds", 60)
	v.SetDefault("rules_idempotency_ttl_seconds", 86400)
}

// LoadConfig reads an optional .env file from dir and then the environment.
// Environment variables win over .env values.
func LoadConfig(dir string) (*Config, error) {
	envFile := filepath.Join(dir, ".env")
	if err := godotenv.Load(envFile); err != nil {
		logrus.Debugf("[CONFIG] No .env loaded from %s: %v", envFile, err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := fromViper(v)
	Global = cfg
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Version:     "v1.0.0",
			Port:        v.GetString("app_port"),
			Debug:       v.GetBool("app_debug"),
			Environment: v.GetString("app_env"),
			BasePath:    v.GetString("app_base_path"),
			BasicAuth:   splitList(v.GetString("app_basic_auth")),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("db_driver")),
			Host:     v.GetString("db_host"),
			Port:     v.GetInt("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
		},
		Valkey: ValkeyConfig{
			Enabled:   v.GetBool("valkey_enabled"),
			Address:   v.GetString("valkey_address"),
			Password:  v.GetString("valkey_password"),
			DB:        v.GetInt("valkey_db"),
			KeyPrefix: v.GetString("valkey_key_prefix"),
		},
		Rules: RulesConfig{
			StaticConfig:   v.GetBool("rules_static_config"),
			LookupTimeout:  time.Duration(v.GetInt("rules_lookup_timeout_ms")) * time.Millisecond,
			ConfigCacheTTL: time.Duration(v.GetInt("rules_config_cache_ttl_seconds")) * time.Second,
			IdempotencyTTL: time.Duration(v.GetInt("rules_idempotency_ttl_seconds")) * time.Second,
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
