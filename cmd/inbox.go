// ABOUTME: Inbox command launching the interactive complaint browser
// ABOUTME: Students browse their own complaints; admins browse all of them

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/tui/inbox"
)

var inboxAll bool

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Browse complaints interactively",
	Long:  `Open an interactive complaint browser. With --all (admin only) it shows every complaint instead of just your own.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runInbox(ctx); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	inboxCmd.Flags().BoolVar(&inboxAll, "all", false, "Browse all complaints (admin only)")
	rootCmd.AddCommand(inboxCmd)
}

// runInbox validates the session and starts the bubbletea program
func runInbox(ctx context.Context) int {
	store, client, _ := newSession()
	if err := store.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if !store.IsAuthenticated() {
		fmt.Fprintln(os.Stderr, "Not logged in")
		return 1
	}
	if inboxAll && !store.IsAdmin() {
		fmt.Fprintln(os.Stderr, "Error: --all requires an admin account")
		return 1
	}

	fetchPage := func(ctx context.Context, page int) (*api.ComplaintPage, error) {
		if inboxAll {
			return client.AllComplaints(ctx, &api.AdminComplaintFilter{
				ComplaintFilter: api.ComplaintFilter{Page: page},
			})
		}
		return client.MyComplaints(ctx, &api.ComplaintFilter{Page: page})
	}
	fetchDetail := func(ctx context.Context, id int) (*api.Complaint, error) {
		if inboxAll {
			return client.Complaint(ctx, id)
		}
		return client.MyComplaint(ctx, id)
	}

	model := inbox.New(fetchPage, fetchDetail)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
