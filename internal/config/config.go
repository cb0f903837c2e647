package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Content   ContentConfig   `mapstructure:"content"`
	Mirror    MirrorConfig    `mapstructure:"mirror"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=memory postgres sqlite mysql"`
	URL             string `mapstructure:"url" validate:"required_unless=Driver memory"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
	ConnectAttempts uint   `mapstructure:"connect_attempts" validate:"min=1"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=16"`
}

type ContentConfig struct {
	Dir   string `mapstructure:"dir" validate:"omitempty,dir"`
	Watch bool   `mapstructure:"watch"`
}

type MirrorConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

// Timeout is the per-request mirror deadline.
func (m MirrorConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// DefaultJWTSecret is only suitable for local development.
const DefaultJWTSecret = "studyhub-dev-secret-change-me"

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	envFiles   []string
}

// NewConfigLoader reads configFile when set, otherwise studyhub.yaml from the
// working directory or $HOME/.config/studyhub. envFiles are dotenv files
// loaded before the environment is consulted; missing ones are skipped.
func NewConfigLoader(configFile string, envFiles ...string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("studyhub")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studyhub")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
		envFiles:   envFiles,
	}, nil
}

var envBindings = map[string]string{
	"server.port":                 "PORT",
	"server.cors.allowed_origins": "CORS_ALLOWED_ORIGINS",
	"database.driver":             "DB_DRIVER",
	"database.url":                "DATABASE_URL",
	"database.auto_migrate":       "DB_AUTO_MIGRATE",
	"auth.jwt_secret":             "JWT_SECRET",
	"content.dir":                 "CONTENT_DIR",
	"content.watch":               "CONTENT_WATCH",
	"mirror.base_url":             "MIRROR_BASE_URL",
	"mirror.token":                "MIRROR_TOKEN",
	"anthropic.api_key":           "ANTHROPIC_API_KEY",
	"anthropic.model":             "ANTHROPIC_MODEL",
}

func (loader *ConfigLoader) Load() (*Config, error) {
	for _, file := range loader.envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_seconds", 300)
	v.SetDefault("database.connect_attempts", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("content.dir", "")
	v.SetDefault("content.watch", true)
	v.SetDefault("mirror.base_url", "")
	v.SetDefault("mirror.token", "")
	v.SetDefault("mirror.timeout_seconds", 5)
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load is a shortcut for NewConfigLoader(configFile, ".env").Load().
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile, ".env")
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
