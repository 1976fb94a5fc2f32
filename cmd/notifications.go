// ABOUTME: Notification commands: list, read, read-all
// ABOUTME: Follows complaint activity through the notification endpoints

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/basgenix/uni-complaint-system/internal/api"
)

var (
	notifyPage       int
	notifyPerPage    int
	notifyUnreadOnly bool
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notify"},
	Short:   "Manage your notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runNotificationsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark one notification as read",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runNotificationsRead(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runNotificationsReadAll(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	notificationsListCmd.Flags().IntVar(&notifyPage, "page", 1, "Page number")
	notificationsListCmd.Flags().IntVar(&notifyPerPage, "per-page", 10, "Items per page")
	notificationsListCmd.Flags().BoolVar(&notifyUnreadOnly, "unread", false, "Only unread notifications")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	rootCmd.AddCommand(notificationsCmd)
}

// runNotificationsList fetches one page of notifications
func runNotificationsList(ctx context.Context, w io.Writer) int {
	_, client, _ := newSession()
	page, err := client.Notifications(ctx, notifyPage, notifyPerPage, notifyUnreadOnly)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(page))
	} else {
		fmt.Fprintln(w, formatNotificationList(page))
	}
	return 0
}

// runNotificationsRead marks one notification as read
func runNotificationsRead(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid notification id %q\n", arg)
		return 1
	}

	_, client, _ := newSession()
	if err := client.MarkNotificationRead(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Notification marked as read")
	return 0
}

// runNotificationsReadAll marks every notification as read
func runNotificationsReadAll(ctx context.Context, w io.Writer) int {
	_, client, _ := newSession()
	if err := client.MarkAllNotificationsRead(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "All notifications marked as read")
	return 0
}

// formatNotificationList renders a notification page as an aligned table
func formatNotificationList(page *api.NotificationPage) string {
	if len(page.Notifications) == 0 {
		return "No notifications"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREAD\tDATE\tTITLE\tMESSAGE")
	for _, n := range page.Notifications {
		read := " "
		if !n.IsRead {
			read = "●"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			n.ID, read, shortDate(n.CreatedAt), truncate(n.Title, 30), truncate(n.Message, 50))
	}
	tw.Flush()
	fmt.Fprintf(&sb, "Page %d of %d (%d total)",
		page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.TotalItems)
	return sb.String()
}
