package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Settings are the environment-driven runtime options of a pipeline run,
// as opposed to the declarative pipeline Spec document.
type Settings struct {
	Env         string        `mapstructure:"ENV"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

// LoadSettings reads runtime settings from the environment, with an
// optional .env file for local development.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", "60s")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("HTTP_TIMEOUT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if s.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", s.HTTPTimeout)
	}

	return s, nil
}

// IsDev reports whether the tool runs in development mode (console logs).
func (s *Settings) IsDev() bool {
	return s.Env == "development"
}
