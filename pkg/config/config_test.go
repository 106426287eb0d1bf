package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PIZZERIA_SESSION_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatalf("default env must be development, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "3000" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if cfg.Admin.Password != "Lucas351524" {
		t.Fatalf("unexpected admin password %q", cfg.Admin.Password)
	}
	if cfg.Session.TTL() != 30*time.Minute {
		t.Fatalf("unexpected session ttl %v", cfg.Session.TTL())
	}
	if cfg.Storage.CatalogFile != "pizza-data.json" || cfg.Storage.ContactFile != "whatsapp-config.json" {
		t.Fatalf("unexpected storage files: %+v", cfg.Storage)
	}
	if cfg.Storage.MaxUploadBytes() != 10<<20 {
		t.Fatalf("unexpected upload cap %d", cfg.Storage.MaxUploadBytes())
	}
	if cfg.WhatsApp.DefaultNumber != "543516351524" {
		t.Fatalf("unexpected default number %q", cfg.WhatsApp.DefaultNumber)
	}
	if cfg.AuthRateLimit.LoginWindow != time.Minute || cfg.AuthRateLimit.LoginIPLimit != 10 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.AuthRateLimit)
	}
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("PIZZERIA_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without session secret")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PIZZERIA_SESSION_SECRET", "test-secret")
	t.Setenv("PIZZERIA_APP_ENV", "production")
	t.Setenv("PIZZERIA_MAX_UPLOAD_MB", "2")
	t.Setenv("PIZZERIA_SESSION_EXPIRATION_MINUTES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected production env")
	}
	if cfg.Storage.MaxUploadBytes() != 2<<20 {
		t.Fatalf("unexpected upload cap %d", cfg.Storage.MaxUploadBytes())
	}
	if cfg.Session.TTL() != 5*time.Minute {
		t.Fatalf("unexpected ttl %v", cfg.Session.TTL())
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	t.Parallel()

	app := AppConfig{Timezone: "Not/AZone"}
	if app.Location() != time.UTC {
		t.Fatal("bad timezone must fall back to UTC")
	}
}

func TestMaxUploadBytesGuard(t *testing.T) {
	t.Parallel()

	s := StorageConfig{MaxUploadMB: 0}
	if s.MaxUploadBytes() != 10<<20 {
		t.Fatalf("zero cap must default to 10MB, got %d", s.MaxUploadBytes())
	}
}
