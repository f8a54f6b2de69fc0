package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"port" validate:"required,numeric"`
	GinMode  string `mapstructure:"gin_mode" validate:"required,oneof=debug release test"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn error"`

	DBDriver   string `mapstructure:"db_driver" validate:"required,oneof=mysql postgres sqlite"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name" validate:"required"`

	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`

	SessionSecret string `mapstructure:"session_secret" validate:"required,min=16"`
	SessionMaxAge int    `mapstructure:"session_max_age" validate:"gt=0"`

	LoginRateLimit  int           `mapstructure:"login_rate_limit" validate:"gte=0"`
	LoginRateWindow time.Duration `mapstructure:"login_rate_window" validate:"gt=0"`
}

var defaults = map[string]any{
	"port":              "8080",
	"gin_mode":          "debug",
	"log_level":         "info",
	"db_driver":         "mysql",
	"db_host":           "localhost",
	"db_port":           "3306",
	"db_user":           "taskuser",
	"db_password":       "taskpassword",
	"db_name":           "task_management",
	"redis_host":        "",
	"redis_port":        "6379",
	"redis_password":    "",
	"session_secret":    "default-secret-key-change-me",
	"session_max_age":   86400 * 7,
	"login_rate_limit":  10,
	"login_rate_window": "1m",
}

// Load reads configuration from a .env file (if present), an optional
// config.yaml in the working directory, and the environment. Environment
// variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
