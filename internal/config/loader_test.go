package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mytodoapp/todo/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yml", `
name: todo-test
environment: staging
server:
  host: 127.0.0.1
  port: 9090
database:
  dsn: ":memory:"
jwt:
  secret: "`+testSecret+`"
  access_token_ttl: 5m
  refresh_token_ttl: 48h
`)

	var cfg config.Config
	if err := config.Load(&cfg, config.WithConfigFile(configFile)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "todo-test" {
		t.Errorf("expected name todo-test, got %s", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment staging, got %s", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.DSN != ":memory:" {
		t.Errorf("expected dsn :memory:, got %s", cfg.Database.DSN)
	}
	if cfg.JWT.AccessTokenTTL != 5*time.Minute {
		t.Errorf("expected access TTL 5m, got %s", cfg.JWT.AccessTokenTTL)
	}
	if cfg.JWT.RefreshTokenTTL != 48*time.Hour {
		t.Errorf("expected refresh TTL 48h, got %s", cfg.JWT.RefreshTokenTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yml", `
database:
  dsn: ":memory:"
jwt:
  secret: "`+testSecret+`"
server:
  port: 8080
`)
	t.Setenv("TODO_SERVER_PORT", "9999")
	t.Setenv("TODO_JWT_ISSUER", "todo-env")

	var cfg config.Config
	if err := config.Load(&cfg, config.WithConfigFile(configFile)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected env override port 9999, got %d", cfg.Server.Port)
	}
	if cfg.JWT.Issuer != "todo-env" {
		t.Errorf("expected issuer todo-env, got %s", cfg.JWT.Issuer)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "config.yml", `
database:
  dsn: ":memory:"
`)
	envFile := writeFile(t, dir, ".env", "TODO_JWT_SECRET="+testSecret+"\n")

	// godotenv loads into the process environment; undo it afterwards.
	t.Cleanup(func() { os.Unsetenv("TODO_JWT_SECRET") })

	var cfg config.Config
	if err := config.Load(&cfg, config.WithConfigFile(configFile), config.WithEnvFile(envFile)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWT.Secret != testSecret {
		t.Errorf("expected secret from .env, got %q", cfg.JWT.Secret)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TODO_JWT_SECRET", testSecret)

	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "todo" {
		t.Errorf("expected default name todo, got %s", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected default environment development, got %s", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("development must force debug on")
	}
	if cfg.JWT.AccessTokenTTL != 15*time.Minute {
		t.Errorf("expected default access TTL 15m, got %s", cfg.JWT.AccessTokenTTL)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		yaml string
	}{
		{"missing jwt secret", "database:\n  dsn: \":memory:\"\n"},
		{"bad environment", "environment: qa\njwt:\n  secret: \"" + testSecret + "\"\n"},
		{"refresh not longer than access", "jwt:\n  secret: \"" + testSecret + "\"\n  access_token_ttl: 1h\n  refresh_token_ttl: 1h\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := writeFile(t, dir, "invalid.yml", tt.yaml)
			var cfg config.Config
			if err := config.Load(&cfg, config.WithConfigFile(configFile)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
