package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/sheetops_test")
}

// ----------------------------------------------------------------------------
// Load Tests
// ----------------------------------------------------------------------------

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Upload.MaxFileSize != 52428800 {
		t.Errorf("Upload.MaxFileSize = %d, want 50MB", cfg.Upload.MaxFileSize)
	}
	if len(cfg.Upload.AllowedExtensions) != 3 {
		t.Errorf("Upload.AllowedExtensions = %v", cfg.Upload.AllowedExtensions)
	}
	if cfg.Profile.TypeVoteWindow != 10 || cfg.Profile.QualityWindow != 100 {
		t.Errorf("Profile windows = %d/%d, want 10/100",
			cfg.Profile.TypeVoteWindow, cfg.Profile.QualityWindow)
	}
	if cfg.Profile.MaxSamples != 2 || cfg.Profile.MaxSampleLen != 25 {
		t.Errorf("Profile samples = %d/%d, want 2/25",
			cfg.Profile.MaxSamples, cfg.Profile.MaxSampleLen)
	}
	if cfg.Runs.Retention != 15*time.Minute {
		t.Errorf("Runs.Retention = %v, want 15m", cfg.Runs.Retention)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PROFILE_MAX_SAMPLES", "5")
	t.Setenv("UPLOAD_ALLOWED_EXTENSIONS", ".csv")
	t.Setenv("RUNS_RETENTION", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Profile.MaxSamples != 5 {
		t.Errorf("Profile.MaxSamples = %d, want 5", cfg.Profile.MaxSamples)
	}
	if len(cfg.Upload.AllowedExtensions) != 1 || cfg.Upload.AllowedExtensions[0] != ".csv" {
		t.Errorf("Upload.AllowedExtensions = %v, want [.csv]", cfg.Upload.AllowedExtensions)
	}
	if cfg.Runs.Retention != time.Hour {
		t.Errorf("Runs.Retention = %v, want 1h", cfg.Runs.Retention)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadDatabaseURLAlternate(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "postgres://localhost/alt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.URL != "postgres://localhost/alt" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
}

func TestLoadInvalidValue(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

// ----------------------------------------------------------------------------
// Validate Tests
// ----------------------------------------------------------------------------

func TestValidateCollectsAllFailures(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "70000")
	t.Setenv("PROFILE_MAX_SAMPLES", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "SERVER_PORT") {
		t.Errorf("missing SERVER_PORT failure in %q", msg)
	}
	if !strings.Contains(msg, "PROFILE_MAX_SAMPLES") {
		t.Errorf("missing PROFILE_MAX_SAMPLES failure in %q", msg)
	}
}

func TestValidateExtensionDot(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPLOAD_ALLOWED_EXTENSIONS", "xlsx")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for extension without dot")
	}
}

// ----------------------------------------------------------------------------
// String Tests
// ----------------------------------------------------------------------------

func TestStringMasksDatabaseURL(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := cfg.String()
	if strings.Contains(s, "sheetops_test") {
		t.Error("database URL leaked into String()")
	}
	if !strings.Contains(s, "[MASKED]") {
		t.Error("expected [MASKED] marker in String()")
	}
}
