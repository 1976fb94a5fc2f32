// ABOUTME: Login command for the uni-complaint CLI
// ABOUTME: Authenticates with email and password and stores the session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/validate"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log into the complaint system",
	Long:  `Authenticate with email and password. Prompts interactively for anything not given as a flag; the session is stored until logout.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	email, password := loginEmail, loginPassword

	if email == "" || password == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Email").Value(&email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		))
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	if err := validate.Email(email); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if password == "" {
		fmt.Fprintln(w, "Error: password is required")
		return 1
	}

	store, _, _ := newSession()
	user, err := store.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", user.FullName, user.Role)
	}
	return 0
}

// formatUserJSON renders a user record as indented JSON
func formatUserJSON(user *api.User) string {
	data, _ := json.MarshalIndent(user, "", "  ")
	return string(data)
}
