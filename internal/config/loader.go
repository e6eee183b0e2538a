package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption customizes Load.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load reads configuration into cfg. It looks for config.yml and .env in
// standard locations unless explicit paths are given, binds environment
// variables, applies defaults, and validates the result.
func Load(cfg *Config, opts ...LoaderOption) error {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.configFile == "" {
		lc.configFile = findFirst("./config.yml", "./config/config.yml", "./cmd/server/config.yml")
	}
	if lc.envFile == "" {
		lc.envFile = findFirst("./.env")
	}

	v := viper.New()

	// YAML config is the base layer.
	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", lc.configFile, err)
		}
	}

	// .env values become process env vars before binding.
	if lc.envFile != "" {
		if err := godotenv.Load(lc.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load %s: %v\n", lc.envFile, err)
		}
	}

	// Environment variables override the file: TODO_JWT_SECRET maps to
	// jwt.secret, TODO_SERVER_PORT to server.port, and so on.
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg.Validate()
}

// bindEnvKeys binds the keys viper cannot discover automatically because
// they may be absent from the YAML layer.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"name", "environment", "debug",
		"logging.level", "logging.format", "logging.output",
		"server.host", "server.port",
		"database.dsn", "database.log_level",
		"jwt.secret", "jwt.issuer", "jwt.access_token_ttl", "jwt.refresh_token_ttl",
		"password.algorithm", "password.bcrypt_cost",
	}
	for _, k := range keys {
		v.BindEnv(k)
	}
}

func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
