package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plantgate.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Minimal(t *testing.T) {
	path := writeConfig(t, `
upstream:
  url: http://localhost:8000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Upstream.URL != "http://localhost:8000" {
		t.Errorf("Upstream.URL = %s", cfg.Upstream.URL)
	}

	// Defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Session.CookieName != "session" {
		t.Errorf("Session.CookieName = %s, want session", cfg.Session.CookieName)
	}
	if cfg.Session.MaxAge != 7*24*time.Hour {
		t.Errorf("Session.MaxAge = %s, want 168h", cfg.Session.MaxAge)
	}
	if cfg.Session.SameSite != "lax" {
		t.Errorf("Session.SameSite = %s, want lax", cfg.Session.SameSite)
	}
	if cfg.Upstream.Timeout != 30*time.Second {
		t.Errorf("Upstream.Timeout = %s, want 30s", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.IdentifyTimeout != 60*time.Second {
		t.Errorf("Upstream.IdentifyTimeout = %s, want 60s", cfg.Upstream.IdentifyTimeout)
	}
}

func TestLoad_MissingUpstreamURL(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() succeeded without upstream.url, want error")
	}
	if !strings.Contains(err.Error(), "upstream.url is required") {
		t.Errorf("error = %v, want upstream.url is required", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"bad upstream scheme",
			"upstream:\n  url: localhost:8000\n",
			"http(s) URL",
		},
		{
			"bad same_site",
			"upstream:\n  url: http://localhost:8000\nsession:\n  same_site: none\n",
			"same_site",
		},
		{
			"bad log level",
			"upstream:\n  url: http://localhost:8000\nlogging:\n  level: verbose\n",
			"logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PLANTGATE_UPSTREAM_URL", "https://api.medplant.example")
	t.Setenv("PLANTGATE_SERVER_PORT", "9090")
	t.Setenv("PLANTGATE_SESSION_SECURE", "true")
	t.Setenv("PLANTGATE_LOG_LEVEL", "debug")

	path := writeConfig(t, `
upstream:
  url: http://file-value:8000
server:
  port: 8081
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Upstream.URL != "https://api.medplant.example" {
		t.Errorf("Upstream.URL = %s, env must win over file", cfg.Upstream.URL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.Session.Secure {
		t.Error("Session.Secure = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PLANTGATE_UPSTREAM_URL", "http://localhost:8000")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Upstream.URL != "http://localhost:8000" {
		t.Errorf("Upstream.URL = %s", cfg.Upstream.URL)
	}
}

func TestLoadFromEnv_MissingURL(t *testing.T) {
	t.Setenv("PLANTGATE_UPSTREAM_URL", "")

	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv() succeeded without PLANTGATE_UPSTREAM_URL, want error")
	}
}

func TestLoadWithFallback(t *testing.T) {
	t.Run("file preferred", func(t *testing.T) {
		path := writeConfig(t, "upstream:\n  url: http://from-file:8000\n")
		cfg, err := LoadWithFallback(path)
		if err != nil {
			t.Fatalf("LoadWithFallback() error = %v", err)
		}
		if cfg.Upstream.URL != "http://from-file:8000" {
			t.Errorf("Upstream.URL = %s", cfg.Upstream.URL)
		}
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("PLANTGATE_UPSTREAM_URL", "http://from-env:8000")
		cfg, err := LoadWithFallback(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("LoadWithFallback() error = %v", err)
		}
		if cfg.Upstream.URL != "http://from-env:8000" {
			t.Errorf("Upstream.URL = %s", cfg.Upstream.URL)
		}
	})

	t.Run("nothing available", func(t *testing.T) {
		t.Setenv("PLANTGATE_UPSTREAM_URL", "")
		if _, err := LoadWithFallback(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatal("LoadWithFallback() succeeded with no configuration")
		}
	})
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	t.Setenv("MEDPLANT_API", "http://expanded:8000")

	path := writeConfig(t, "upstream:\n  url: ${MEDPLANT_API}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Upstream.URL != "http://expanded:8000" {
		t.Errorf("Upstream.URL = %s, want expanded value", cfg.Upstream.URL)
	}
}
