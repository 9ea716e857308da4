/*
Package configs loads the application's configuration settings.

Settings come from environment variables, optionally seeded from a .env file, and cover
the environment, listen port, CORS origins, auth cookie mode, demo accounts, generate
burst pacing, the optional login rate limit and stream keepalive.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// TokenModePlain is the unsigned base64 auth cookie.
	TokenModePlain = "plain"

	// TokenModeSigned is the HS256-signed auth cookie.
	TokenModeSigned = "signed"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	AuthTokenMode  string
	JWTSecret      string
	LoginRate      float64
	LoginBurst     int

	// Accounts
	UsersFile string
	Users     map[string]string

	// Homepage Settings
	GenerateInterval time.Duration
	StreamKeepAlive  time.Duration
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoginRateLimited reports whether POST /login is throttled per client address.
func (c *AppConfig) LoginRateLimited() bool {
	return c.LoginRate > 0
}

// LoadEnvFile loads variables from a .env file without overriding variables that are
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads and validates the configuration from environment variables,
// applying defaults for anything unset.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	cfg.AuthTokenMode = strings.ToLower(getEnv("AUTH_TOKEN_MODE", TokenModePlain))
	if cfg.AuthTokenMode != TokenModePlain && cfg.AuthTokenMode != TokenModeSigned {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_MODE %q: expected %q or %q", cfg.AuthTokenMode, TokenModePlain, TokenModeSigned)
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.AuthTokenMode == TokenModeSigned && cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required for signed auth cookies in %s environment", cfg.Environment)
		}
		cfg.JWTSecret = "your_default_insecure_secret_key_change_me"
	}

	// A zero rate leaves POST /login unthrottled.
	cfg.LoginRate, err = strconv.ParseFloat(getEnv("LOGIN_RATE", "0"), 64)
	if err != nil || cfg.LoginRate < 0 {
		return nil, fmt.Errorf("invalid LOGIN_RATE environment variable: must be zero or a positive number")
	}

	cfg.LoginBurst, err = strconv.Atoi(getEnv("LOGIN_BURST", "5"))
	if err != nil || cfg.LoginBurst < 1 {
		return nil, fmt.Errorf("invalid LOGIN_BURST environment variable: must be a positive integer")
	}

	// --- Accounts ---
	cfg.UsersFile = os.Getenv("USERS_FILE")
	cfg.Users, err = LoadUsers(cfg.UsersFile)
	if err != nil {
		return nil, err
	}

	// --- Homepage Settings ---
	cfg.GenerateInterval, err = time.ParseDuration(getEnv("GENERATE_INTERVAL", "1s"))
	if err != nil || cfg.GenerateInterval < 0 {
		return nil, fmt.Errorf("invalid GENERATE_INTERVAL environment variable: must be a non-negative duration")
	}

	cfg.StreamKeepAlive, err = time.ParseDuration(getEnv("STREAM_KEEPALIVE", "15s"))
	if err != nil || cfg.StreamKeepAlive < 0 {
		return nil, fmt.Errorf("invalid STREAM_KEEPALIVE environment variable: must be a non-negative duration")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable key, or fallback when unset.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
