package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return dir
}

func TestLoadConfig_File(t *testing.T) {
	dir := writeConfig(t, `
server:
  address: ":9090"
  cors:
    allowedOrigins: ["https://khatira.example"]
database:
  driver: postgres
  dsn: "postgres://khatira@localhost/khatira"
  redis:
    address: "localhost:6379"
admin:
  password: "valar morghulis"
  sessionTTL: 30m
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Address != ":9090" {
		t.Errorf("expected address :9090, got %q", cfg.Server.Address)
	}
	if len(cfg.Server.Cors.AllowedOrigins) != 1 || cfg.Server.Cors.AllowedOrigins[0] != "https://khatira.example" {
		t.Errorf("unexpected origins: %v", cfg.Server.Cors.AllowedOrigins)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %q", cfg.Database.Driver)
	}
	if !cfg.Database.Redis.Enabled() {
		t.Error("expected redis to be enabled")
	}
	if cfg.Admin.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m session ttl, got %v", cfg.Admin.SessionTTL)
	}
}

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("SERVER_ADDRESS", ":7000")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Admin.Password != "from-env" {
		t.Errorf("env should set admin password, got %q", cfg.Admin.Password)
	}
	if cfg.Server.Address != ":7000" {
		t.Errorf("env should override address, got %q", cfg.Server.Address)
	}
	if cfg.Database.Driver != DriverSqlite || cfg.Database.DSN != "khatira.db" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Database.Redis.Enabled() {
		t.Error("redis should be disabled by default")
	}
	if cfg.Admin.SessionTTL != 12*time.Hour {
		t.Errorf("expected default ttl 12h, got %v", cfg.Admin.SessionTTL)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Database: DatabaseConfig{Driver: DriverSqlite, DSN: "khatira.db"},
			Admin:    AdminConfig{Password: "secret", SessionTTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "mysql"},
		{"unknown mode", func(c *Config) { c.Server.Mode = "prod" }, "prod"},
		{"empty dsn", func(c *Config) { c.Database.DSN = " " }, "database.dsn"},
		{"no admin secret", func(c *Config) { c.Admin.Password = "" }, "admin.password"},
		{"hash only", func(c *Config) { c.Admin.Password = ""; c.Admin.PasswordHash = "$2a$10$x" }, ""},
		{"zero ttl", func(c *Config) { c.Admin.SessionTTL = 0 }, "sessionTTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
