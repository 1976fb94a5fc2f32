// ABOUTME: Configuration loader for the uni-complaint CLI
// ABOUTME: Loads settings from environment variables and optional .env file

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// API
	APIURL         string        // base URL of the complaint API
	RequestTimeout time.Duration // per-request timeout (default 30s)

	// Client state
	ConfigDir string // directory for persisted credentials
}

const defaultAPIURL = "http://localhost:5000/api"

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables take precedence over .env values.
func Load() *Config {
	godotenv.Load()

	return &Config{
		APIURL:         ensureScheme(getEnv("UNI_COMPLAINT_API_URL", defaultAPIURL)),
		RequestTimeout: time.Duration(getEnvInt("UNI_COMPLAINT_TIMEOUT", 30)) * time.Second,
		ConfigDir:      getEnv("UNI_COMPLAINT_CONFIG_DIR", DefaultConfigDir()),
	}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "uni-complaint")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "uni-complaint")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	url = strings.TrimRight(url, "/")
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
