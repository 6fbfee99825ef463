package config

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/notemind/notemind/internal/errors"
)

func TestValidate_MissingSecret(t *testing.T) {
	cfg := &Config{
		JWT: JWTConfig{Secret: "", ExpirationTime: time.Hour},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing JWT secret, got nil")
	}
	if !errors.Is(err, apperrors.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestValidate_NonPositiveExpiration(t *testing.T) {
	cfg := &Config{
		JWT: JWTConfig{Secret: "secret", ExpirationTime: 0},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero JWT expiration, got nil")
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{
		JWT: JWTConfig{Secret: "secret", ExpirationTime: 30 * 24 * time.Hour},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.JWT.ExpirationTime != 30*24*time.Hour {
		t.Errorf("expected 30d token validity, got %v", cfg.JWT.ExpirationTime)
	}
	if cfg.Reset.TokenTTL != 10*time.Minute {
		t.Errorf("expected 10m reset token TTL, got %v", cfg.Reset.TokenTTL)
	}
	if cfg.JWT.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.JWT.BcryptCost)
	}
}
