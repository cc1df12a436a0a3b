package config

import (
	"fmt"
	"strings"
	"time"

	"empire-builder/internal/pkg/constants"
	"empire-builder/internal/pkg/validation"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DatabaseURL string // sqlite file path, or postgres:// DSN
	RedisURL    string
	SaveBackend string // sql | redis
	SaveName    string
	CatalogFile string // empty = built-in catalog

	TickInterval     time.Duration
	AutosaveInterval time.Duration

	BonusURL      string
	BonusCooldown time.Duration

	StreamAddr     string // empty disables the websocket stream
	StreamInterval time.Duration

	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", constants.EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "empire.db")
	v.SetDefault("SAVE_BACKEND", constants.SaveBackendSQL)
	v.SetDefault("SAVE_NAME", "empireBuilderSave")
	v.SetDefault("TICK_INTERVAL", "100ms")
	v.SetDefault("AUTOSAVE_INTERVAL", "30s")
	v.SetDefault("BONUS_COOLDOWN", "1m")
	v.SetDefault("STREAM_INTERVAL", "1s")

	cfg := &Config{
		Env:                 v.GetString("APP_ENV"),
		Port:                v.GetString("PORT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisURL:            v.GetString("REDIS_URL"),
		SaveBackend:         strings.ToLower(v.GetString("SAVE_BACKEND")),
		SaveName:            v.GetString("SAVE_NAME"),
		CatalogFile:         v.GetString("CATALOG_FILE"),
		TickInterval:        v.GetDuration("TICK_INTERVAL"),
		AutosaveInterval:    v.GetDuration("AUTOSAVE_INTERVAL"),
		BonusURL:            strings.TrimSpace(v.GetString("BONUS_URL")),
		BonusCooldown:       v.GetDuration("BONUS_COOLDOWN"),
		StreamAddr:          v.GetString("STREAM_ADDR"),
		StreamInterval:      v.GetDuration("STREAM_INTERVAL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
	}
	if cfg.BonusURL == "" {
		cfg.BonusURL = "http://localhost:" + cfg.Port + "/api/daily-bonus"
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !constants.IsValidSaveBackend(c.SaveBackend) {
		return fmt.Errorf("SAVE_BACKEND must be one of %v, got %q", constants.ValidSaveBackends, c.SaveBackend)
	}
	if c.SaveBackend == constants.SaveBackendRedis && c.RedisURL == "" {
		return fmt.Errorf("SAVE_BACKEND=redis requires REDIS_URL")
	}
	if !validation.IsValidSaveName(c.SaveName) {
		return fmt.Errorf("SAVE_NAME %q must be 1-64 letters, digits, '-' or '_'", c.SaveName)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive")
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("AUTOSAVE_INTERVAL must be positive")
	}
	return nil
}

// IsProduction reports whether APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == constants.EnvProduction
}
