// ABOUTME: Whoami command for the uni-complaint CLI
// ABOUTME: Restores the stored session and shows the current identity

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/token"
	"github.com/basgenix/uni-complaint-system/internal/tui/widgets"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	Long:  `Validate the stored session against the server and display the logged-in user. Exits with status 1 when no valid session is stored.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami restores the session and reports the identity
func runWhoami(ctx context.Context, w io.Writer) int {
	store, _, creds := newSession()

	if err := store.Initialize(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in")
		return 1
	}

	user := store.User()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(user, creds.AccessToken()))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(user, creds.AccessToken()))
	}
	return 0
}

// formatWhoamiHuman formats the identity for human readability
func formatWhoamiHuman(user *api.User, accessToken string) string {
	out := fmt.Sprintf(`Name:       %s
Email:      %s
Role:       %s`, user.FullName, user.Email, widgets.RoleBadge(user.Role))
	if user.MatricNumber != "" {
		out += fmt.Sprintf("\nMatric:     %s", user.MatricNumber)
	}
	if user.Department != "" {
		out += fmt.Sprintf("\nDepartment: %s", user.Department)
	}
	if info, ok := token.Inspect(accessToken); ok && !info.ExpiresAt.IsZero() {
		out += fmt.Sprintf("\nToken:      expires %s", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return out
}

// formatWhoamiJSON formats the identity as JSON
func formatWhoamiJSON(user *api.User, accessToken string) string {
	output := map[string]any{"user": user}
	if info, ok := token.Inspect(accessToken); ok && !info.ExpiresAt.IsZero() {
		output["token_expires_at"] = info.ExpiresAt.UTC().Format(time.RFC3339)
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
