// ABOUTME: Register command for the uni-complaint CLI
// ABOUTME: Creates a student account and logs straight into it

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

var registerInput api.RegisterInput

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a student account",
	Long:  `Register a new student account. Prompts interactively for anything not given as a flag and logs into the new account on success.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerInput.Email, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerInput.Password, "password", "", "Account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerInput.FullName, "full-name", "", "Full name")
	registerCmd.Flags().StringVar(&registerInput.MatricNumber, "matric-number", "", "Matriculation number")
	registerCmd.Flags().StringVar(&registerInput.Department, "department", "", "Department")
	registerCmd.Flags().StringVar(&registerInput.Faculty, "faculty", "", "Faculty (optional)")
	registerCmd.Flags().StringVar(&registerInput.Phone, "phone", "", "Phone number (optional)")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes the registration flow and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	in := registerInput

	if in.Email == "" || in.Password == "" || in.FullName == "" || in.MatricNumber == "" || in.Department == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Email").Value(&in.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&in.Password),
			huh.NewInput().Title("Full name").Value(&in.FullName),
			huh.NewInput().Title("Matric number").Value(&in.MatricNumber),
			huh.NewInput().Title("Department").Value(&in.Department),
			huh.NewInput().Title("Phone (optional)").Value(&in.Phone),
		))
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	if err := validate.Email(in.Email); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := validate.Password(in.Password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := validate.Required(map[string]string{
		"full_name":     in.FullName,
		"matric_number": in.MatricNumber,
		"department":    in.Department,
	}, "full_name", "matric_number", "department"); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	store, _, _ := newSession()
	user, err := store.Register(ctx, &in)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintf(w, "Account created. Logged in as %s (%s)\n", user.FullName, user.Email)
	}
	return 0
}
