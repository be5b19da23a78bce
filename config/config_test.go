package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_MODE", "LIBRARY_DB", "LIBRARY_STORAGE", "LIBRARY_CATALOG", "LIBRARY_LOG_LEVEL", "LIBRARY_MESSAGE_SECONDS", "LIBRARY_BCRYPT_COST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsDev() || cfg.DBPath != "library.db" || cfg.InMemory() {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.MessageDuration != 3*time.Second {
		t.Fatalf("want 3s, got %v", cfg.MessageDuration)
	}
	if _, err := cfg.NewLogger(); err != nil {
		t.Fatalf("logger: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("LIBRARY_DB", "/tmp/desk.db")
	t.Setenv("LIBRARY_STORAGE", "memory")
	t.Setenv("LIBRARY_MESSAGE_SECONDS", "10")
	t.Setenv("LIBRARY_BCRYPT_COST", "4")
	t.Setenv("LIBRARY_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IsDev() || cfg.DBPath != "/tmp/desk.db" || !cfg.InMemory() || cfg.BcryptCost != 4 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.MessageDuration != 10*time.Second {
		t.Fatalf("want 10s, got %v", cfg.MessageDuration)
	}
	if _, err := cfg.NewLogger(); err != nil {
		t.Fatalf("logger: %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"APP_MODE":                "staging",
		"LIBRARY_STORAGE":         "redis",
		"LIBRARY_MESSAGE_SECONDS": "soon",
		"LIBRARY_BCRYPT_COST":     "99",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s should be rejected", key, value)
			}
		})
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	cfg := &Config{AppMode: "dev", LogLevel: "loud"}
	if _, err := cfg.NewLogger(); err == nil {
		t.Fatalf("want error for unknown level")
	}
}
