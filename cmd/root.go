// ABOUTME: Root command for the uni-complaint CLI
// ABOUTME: Handles global flags and wires config, credentials, and the API client

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/config"
	"github.com/basgenix/uni-complaint-system/internal/credstore"
	"github.com/basgenix/uni-complaint-system/internal/logger"
	"github.com/basgenix/uni-complaint-system/internal/session"
)

var (
	apiURL     string
	configDir  string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "uni-complaint",
	Short: "CLI for the university complaint management system",
	Long: `uni-complaint is a command-line client for the university complaint
management system.

Students submit and track complaints; admins triage, respond, and report.
Credentials are stored per user under the config directory and refreshed
automatically when the access token expires.

Environment Variables:
  UNI_COMPLAINT_API_URL  Backend API URL (default: http://localhost:5000/api)`,
}

// Execute runs the root command
func Execute() error {
	logger.Init()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides UNI_COMPLAINT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory for stored credentials (default ~/.config/uni-complaint)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("UNI_COMPLAINT_API_URL"); envURL != "" {
		return envURL
	}
	return config.Load().APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// getConfigDir returns the credential directory from flag, env, or default
func getConfigDir() string {
	if configDir != "" {
		return configDir
	}
	return config.Load().ConfigDir
}

// newSession builds the credential store, API client, and session store
// shared by every command.
func newSession() (*session.Store, *api.Client, *credstore.Store) {
	cfg := config.Load()
	creds := credstore.New(getConfigDir())
	client := api.New(GetAPIURL(), creds, api.WithTimeout(cfg.RequestTimeout))
	return session.New(client, creds), client, creds
}
