// ABOUTME: Tests for configuration loading
// ABOUTME: Verifies env precedence, defaults, and URL normalization

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("UNI_COMPLAINT_API_URL")
	os.Unsetenv("UNI_COMPLAINT_TIMEOUT")

	cfg := Load()
	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.RequestTimeout)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("UNI_COMPLAINT_API_URL", "https://complaints.example.edu/api/")
	os.Setenv("UNI_COMPLAINT_TIMEOUT", "5")
	defer os.Unsetenv("UNI_COMPLAINT_API_URL")
	defer os.Unsetenv("UNI_COMPLAINT_TIMEOUT")

	cfg := Load()
	if cfg.APIURL != "https://complaints.example.edu/api" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.APIURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.RequestTimeout)
	}
}

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:5000/api", "http://localhost:5000/api"},
		{"http://host/api", "http://host/api"},
		{"https://host/api/", "https://host/api"},
	}
	for _, tt := range tests {
		if got := ensureScheme(tt.in); got != tt.want {
			t.Errorf("ensureScheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	os.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	defer os.Unsetenv("XDG_CONFIG_HOME")

	dir := DefaultConfigDir()
	if !strings.HasSuffix(dir, "uni-complaint") || !strings.HasPrefix(dir, "/tmp/xdg") {
		t.Errorf("expected XDG-based dir, got %s", dir)
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	os.Setenv("UNI_COMPLAINT_TIMEOUT", "not-a-number")
	defer os.Unsetenv("UNI_COMPLAINT_TIMEOUT")

	if got := getEnvInt("UNI_COMPLAINT_TIMEOUT", 30); got != 30 {
		t.Errorf("expected fallback 30, got %d", got)
	}
}
