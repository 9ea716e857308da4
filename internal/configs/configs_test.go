package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable LoadConfig reads so host settings do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "AUTH_TOKEN_MODE", "JWT_SECRET",
		"LOGIN_RATE", "LOGIN_BURST", "USERS_FILE", "GENERATE_INTERVAL", "STREAM_KEEPALIVE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig error: %v", err)
		}

		if !cfg.IsDevelopment() {
			t.Errorf("expected development, got %q", cfg.Environment)
		}
		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}
		if cfg.AuthTokenMode != TokenModePlain {
			t.Errorf("expected plain token mode, got %q", cfg.AuthTokenMode)
		}
		if cfg.GenerateInterval != time.Second {
			t.Errorf("expected 1s interval, got %v", cfg.GenerateInterval)
		}
		if cfg.StreamKeepAlive != 15*time.Second {
			t.Errorf("expected 15s keepalive, got %v", cfg.StreamKeepAlive)
		}
		if cfg.LoginRate != 0 || cfg.LoginBurst != 5 || cfg.LoginRateLimited() {
			t.Errorf("login should be unthrottled by default, got %v/%d", cfg.LoginRate, cfg.LoginBurst)
		}
		if cfg.Users["mark"] != "pass123" || cfg.Users["luke"] != "pass456" {
			t.Errorf("unexpected default users %v", cfg.Users)
		}
		if len(cfg.AllowedOrigins) != 0 {
			t.Errorf("expected no origins, got %v", cfg.AllowedOrigins)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("PORT", "9000")
		t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
		t.Setenv("AUTH_TOKEN_MODE", "SIGNED")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("GENERATE_INTERVAL", "250ms")
		t.Setenv("STREAM_KEEPALIVE", "0")
		t.Setenv("LOGIN_RATE", "0.5")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig error: %v", err)
		}

		if cfg.IsDevelopment() || cfg.Port != 9000 {
			t.Errorf("unexpected env/port %q/%d", cfg.Environment, cfg.Port)
		}
		if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
		}
		if cfg.AuthTokenMode != TokenModeSigned || cfg.JWTSecret != "s3cret" {
			t.Errorf("unexpected token settings %q/%q", cfg.AuthTokenMode, cfg.JWTSecret)
		}
		if !cfg.LoginRateLimited() || cfg.LoginRate != 0.5 {
			t.Errorf("expected login throttling at 0.5/s, got %v", cfg.LoginRate)
		}
		if cfg.GenerateInterval != 250*time.Millisecond || cfg.StreamKeepAlive != 0 {
			t.Errorf("unexpected durations %v/%v", cfg.GenerateInterval, cfg.StreamKeepAlive)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name string
			env  map[string]string
		}{
			{"port not a number", map[string]string{"PORT": "http"}},
			{"privileged port", map[string]string{"PORT": "80"}},
			{"unknown token mode", map[string]string{"AUTH_TOKEN_MODE": "magic"}},
			{"signed without secret in production", map[string]string{"ENVIRONMENT": "production", "AUTH_TOKEN_MODE": "signed"}},
			{"bad interval", map[string]string{"GENERATE_INTERVAL": "soon"}},
			{"negative keepalive", map[string]string{"STREAM_KEEPALIVE": "-1s"}},
			{"negative login rate", map[string]string{"LOGIN_RATE": "-1"}},
			{"login rate not a number", map[string]string{"LOGIN_RATE": "fast"}},
			{"missing users file", map[string]string{"USERS_FILE": "/nonexistent/users.toml"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				clearEnv(t)
				for k, v := range tt.env {
					t.Setenv(k, v)
				}

				if _, err := LoadConfig(); err == nil {
					t.Error("expected error")
				}
			})
		}
	})

	t.Run("signed mode falls back to a dev secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AUTH_TOKEN_MODE", "signed")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig error: %v", err)
		}
		if cfg.JWTSecret == "" {
			t.Error("expected a development secret")
		}
	})
}

func TestLoadUsers(t *testing.T) {
	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.toml")
		if err := os.WriteFile(path, []byte("[users]\nleia = \"pass789\"\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		users, err := LoadUsers(path)
		if err != nil {
			t.Fatalf("LoadUsers error: %v", err)
		}
		if len(users) != 1 || users["leia"] != "pass789" {
			t.Errorf("unexpected users %v", users)
		}
	})

	t.Run("file without accounts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.toml")
		os.WriteFile(path, []byte("# nothing\n"), 0o600)

		if _, err := LoadUsers(path); err == nil {
			t.Error("expected error for empty account table")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.toml")
		os.WriteFile(path, []byte("[users\n"), 0o600)

		if _, err := LoadUsers(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("loads variables", func(t *testing.T) {
		t.Setenv("LIVEFEED_TEST_VAR", "")
		os.Unsetenv("LIVEFEED_TEST_VAR")

		path := filepath.Join(t.TempDir(), ".env")
		os.WriteFile(path, []byte("LIVEFEED_TEST_VAR=hello\n"), 0o600)

		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("LoadEnvFile error: %v", err)
		}
		if got := os.Getenv("LIVEFEED_TEST_VAR"); got != "hello" {
			t.Errorf("got %q", got)
		}
	})
}
