package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Rates    RatesConfig    `mapstructure:"rates"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port      string `mapstructure:"port"`
	RateLimit int    `mapstructure:"rate_limit"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	Issuer        string        `mapstructure:"issuer"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
}

type RatesConfig struct {
	BNAURL   string        `mapstructure:"bna_url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Load reads .env (if any), then environment variables and an optional
// config.yaml. Environment variables win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.issuer", "mishabitos-api")
	v.SetDefault("auth.token_duration", 24*time.Hour)
	v.SetDefault("rates.bna_url", "https://www.bna.com.ar/Personas")
	v.SetDefault("rates.cache_ttl", 30*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"server.port":         "PORT",
		"server.rate_limit":   "RATE_LIMIT",
		"database.driver":     "DB_DRIVER",
		"database.user":       "DB_USER",
		"database.password":   "DB_PASSWORD",
		"database.host":       "DB_HOST",
		"database.port":       "DB_PORT",
		"database.name":       "DB_NAME",
		"database.sslmode":    "DB_SSLMODE",
		"redis.host":          "REDIS_HOST",
		"redis.port":          "REDIS_PORT",
		"redis.password":      "REDIS_PASSWORD",
		"redis.db":            "REDIS_DB",
		"auth.jwt_secret":     "JWT_SECRET",
		"auth.issuer":         "JWT_ISSUER",
		"auth.token_duration": "JWT_TTL",
		"rates.bna_url":       "BNA_URL",
		"rates.cache_ttl":     "RATES_CACHE_TTL",
		"log.level":           "LOG_LEVEL",
		"log.format":          "LOG_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch c.Database.Driver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q (pgx or postgres)", c.Database.Driver)
	}
	if c.Rates.CacheTTL <= 0 {
		return errors.New("config: RATES_CACHE_TTL must be positive")
	}
	return nil
}
