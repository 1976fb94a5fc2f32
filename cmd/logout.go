// ABOUTME: Logout command for the uni-complaint CLI
// ABOUTME: Clears stored credentials unconditionally and without network calls

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard stored credentials",
	Long:  `Clear the stored session. Works offline and succeeds even when no session is stored.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	store, _, _ := newSession()
	store.Logout()
	fmt.Fprintln(w, "Logged out")
	return 0
}
