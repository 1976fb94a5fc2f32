// ABOUTME: Profile commands for the uni-complaint CLI
// ABOUTME: Updates profile fields and changes the account password

package cmd

import (
	"context"
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
	profileFullName   string
	profileDepartment string
	profileFaculty    string
	profilePhone      string

	passwdCurrent string
	passwdNew     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the logged-in account",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long:  `Update the profile fields given as flags. Omitted fields are left unchanged; credentials are never touched.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfileUpdate(ctx, os.Stdout, cmd)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profilePasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the account password",
	Long:  `Change the account password. Prompts for both passwords when not given as flags. The session stays logged in afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfilePasswd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFullName, "full-name", "", "Full name")
	profileUpdateCmd.Flags().StringVar(&profileDepartment, "department", "", "Department")
	profileUpdateCmd.Flags().StringVar(&profileFaculty, "faculty", "", "Faculty")
	profileUpdateCmd.Flags().StringVar(&profilePhone, "phone", "", "Phone number")

	profilePasswdCmd.Flags().StringVar(&passwdCurrent, "current", "", "Current password (prompted when omitted)")
	profilePasswdCmd.Flags().StringVar(&passwdNew, "new", "", "New password (prompted when omitted)")

	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePasswdCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileUpdate sends the changed fields and returns exit code
func runProfileUpdate(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	input := &api.ProfileInput{}
	if cmd.Flags().Changed("full-name") {
		input.FullName = &profileFullName
	}
	if cmd.Flags().Changed("department") {
		input.Department = &profileDepartment
	}
	if cmd.Flags().Changed("faculty") {
		input.Faculty = &profileFaculty
	}
	if cmd.Flags().Changed("phone") {
		input.Phone = &profilePhone
	}
	if input.FullName == nil && input.Department == nil && input.Faculty == nil && input.Phone == nil {
		fmt.Fprintln(w, "Error: no fields to update")
		return 1
	}

	store, _, _ := newSession()
	user, err := store.UpdateProfile(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintf(w, "Profile updated for %s\n", user.FullName)
	}
	return 0
}

// runProfilePasswd changes the password and returns exit code
func runProfilePasswd(ctx context.Context, w io.Writer) int {
	current, next := passwdCurrent, passwdNew

	if current == "" || next == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Current password").EchoMode(huh.EchoModePassword).Value(&current),
			huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&next),
		))
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	if current == "" {
		fmt.Fprintln(w, "Error: current password is required")
		return 1
	}
	if err := validate.Password(next); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	store, _, _ := newSession()
	if err := store.ChangePassword(ctx, current, next); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Password changed")
	return 0
}
