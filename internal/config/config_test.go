package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garnizeh/flightlog/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Addr:         ":8080",
		APITimeout:   5 * time.Second,
		DatabasePath: "flightlog.db",
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("FLIGHTLOG_ADDR", "")
	t.Setenv("FLIGHTLOG_DATABASE_PATH", "")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected Addr: %q", cfg.Addr)
	}
	if cfg.DatabasePath != "flightlog.db" {
		t.Fatalf("unexpected DatabasePath: %q", cfg.DatabasePath)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("unexpected APITimeout: %v", cfg.APITimeout)
	}
	if cfg.MaxImportBytes != 10<<20 {
		t.Fatalf("unexpected MaxImportBytes: %d", cfg.MaxImportBytes)
	}
	if cfg.Stats.TopLocations != 10 {
		t.Fatalf("unexpected Stats.TopLocations: %d", cfg.Stats.TopLocations)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FLIGHTLOG_ADDR", ":9090")
	t.Setenv("FLIGHTLOG_DATABASE_PATH", "/tmp/x.db")
	t.Setenv("FLIGHTLOG_MIGRATE_ON_START", "false")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.DatabasePath != "/tmp/x.db" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.MigrateOnStart {
		t.Fatalf("expected MigrateOnStart false from env")
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	y := "addr: \":7070\"\n" +
		"timeout: 3s\n" +
		"database_path: '/var/lib/flightlog/log.db'\n" +
		"log_level: debug\n" +
		"log_format: text\n" +
		"stats:\n  top_locations: 5\n"
	if err := os.WriteFile(p, []byte(y), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("unexpected Addr: %q", cfg.Addr)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Fatalf("unexpected APITimeout: %v", cfg.APITimeout)
	}
	if cfg.DatabasePath != "/var/lib/flightlog/log.db" {
		t.Fatalf("unexpected DatabasePath: %q", cfg.DatabasePath)
	}
	if cfg.Stats.TopLocations != 5 {
		t.Fatalf("unexpected TopLocations: %d", cfg.Stats.TopLocations)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Fatalf("unexpected level %v err %v", level, err)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("addr: [unclosed"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(p); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{name: "Valid", mutate: func(c *config.Config) {}},
		{name: "MissingAddr", mutate: func(c *config.Config) { c.Addr = " " }, wantErr: true},
		{name: "MissingDatabasePath", mutate: func(c *config.Config) { c.DatabasePath = "" }, wantErr: true},
		{name: "ZeroTimeout", mutate: func(c *config.Config) { c.APITimeout = 0 }, wantErr: true},
		{name: "UnknownLevel", mutate: func(c *config.Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "UnknownFormat", mutate: func(c *config.Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "TooManyTopLocations", mutate: func(c *config.Config) { c.Stats.TopLocations = 1000 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected Validate to fail")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected Validate to succeed, got: %v", err)
			}
		})
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if cfg.MaxImportBytes != 10<<20 {
		t.Fatalf("expected default MaxImportBytes, got %d", cfg.MaxImportBytes)
	}
	if cfg.Stats.TopLocations != 10 {
		t.Fatalf("expected default TopLocations, got %d", cfg.Stats.TopLocations)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := validConfig()
	l, err := cfg.NewLogger()
	if err != nil || l == nil {
		t.Fatalf("NewLogger: %v", err)
	}

	cfg.LogLevel = "nope"
	if _, err := cfg.NewLogger(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestContextLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("database_path: "+filepath.Join(dir, "f.db")+"\nlog_format: text\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := &config.Context{ConfigPath: path}
	if err := ctx.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if ctx.Config == nil || ctx.Logger == nil {
		t.Fatalf("expected config and logger to be set")
	}
	if ctx.Config.Stats.TopLocations != 10 {
		t.Fatalf("expected defaults filled, got top_locations=%d", ctx.Config.Stats.TopLocations)
	}

	bad := &config.Context{ConfigPath: filepath.Join(dir, "missing.yaml")}
	if err := bad.Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	invalid := &config.Context{ConfigPath: path}
	if err := invalid.Load(); err == nil {
		t.Fatalf("expected validation error")
	}
}
