package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadSettings_Defaults(t *testing.T) {
	os.Unsetenv("ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("HTTP_TIMEOUT")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Env != "production" {
		t.Errorf("expected default env production, got %s", s.Env)
	}
	if s.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", s.LogLevel)
	}
	if s.HTTPTimeout != 60*time.Second {
		t.Errorf("expected default timeout 60s, got %s", s.HTTPTimeout)
	}
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	os.Setenv("ENV", "development")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("HTTP_TIMEOUT", "5s")
	defer func() {
		os.Unsetenv("ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("HTTP_TIMEOUT")
	}()

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.IsDev() {
		t.Error("expected IsDev() for ENV=development")
	}
	if s.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", s.LogLevel)
	}
	if s.HTTPTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", s.HTTPTimeout)
	}
}
