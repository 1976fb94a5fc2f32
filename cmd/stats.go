// ABOUTME: Stats command showing the student's own complaint statistics
// ABOUTME: Renders status counts, recent complaints, and unread notifications

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/basgenix/uni-complaint-system/internal/api"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your complaint statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStats(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats fetches and prints the student's statistics
func runStats(ctx context.Context, w io.Writer) int {
	_, client, _ := newSession()
	stats, err := client.MyStats(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(stats))
	} else {
		fmt.Fprintln(w, formatStatsHuman(stats))
	}
	return 0
}

// formatStatsHuman renders the statistics for human readability
func formatStatsHuman(stats *api.StudentStats) string {
	s := stats.Statistics
	var sb strings.Builder
	fmt.Fprintf(&sb, `Total:        %d
Pending:      %d
In Progress:  %d
Resolved:     %d
Closed:       %d
Rejected:     %d
Unread notifications: %d`,
		s.Total, s.Pending, s.InProgress, s.Resolved, s.Closed, s.Rejected,
		stats.UnreadNotifications)

	if len(stats.RecentComplaints) > 0 {
		sb.WriteString("\n\nRecent complaints:\n")
		for _, c := range stats.RecentComplaints {
			fmt.Fprintf(&sb, "  %s  %-12s %s\n", c.TicketNumber, c.Status, truncate(c.Title, 50))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
