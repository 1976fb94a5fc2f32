// ABOUTME: Dashboard commands: overview, charts, and reports (admin only)
// ABOUTME: Renders distribution charts as text bars and reports as tables

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/tui/styles"
)

var (
	chartTrendDays  int
	reportStartDate string
	reportEndDate   string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Dashboard metrics, charts, and reports (admin only)",
}

var dashboardOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show system-wide complaint metrics",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboardOverview(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var dashboardChartCmd = &cobra.Command{
	Use:       "chart [status|category|priority|trend|monthly|all]",
	Short:     "Show a complaint distribution chart",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"status", "category", "priority", "trend", "monthly", "all"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboardChart(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var dashboardReportCmd = &cobra.Command{
	Use:       "report [summary|admin-performance]",
	Short:     "Show an aggregated report",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"summary", "admin-performance"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboardReport(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	dashboardChartCmd.Flags().IntVar(&chartTrendDays, "days", 30, "Days of history for the trend chart")
	dashboardReportCmd.Flags().StringVar(&reportStartDate, "start-date", "", "Report start (YYYY-MM-DD)")
	dashboardReportCmd.Flags().StringVar(&reportEndDate, "end-date", "", "Report end (YYYY-MM-DD)")

	dashboardCmd.AddCommand(dashboardOverviewCmd)
	dashboardCmd.AddCommand(dashboardChartCmd)
	dashboardCmd.AddCommand(dashboardReportCmd)
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboardOverview fetches and prints the system-wide metrics
func runDashboardOverview(ctx context.Context, w io.Writer) int {
	_, client, _ := newSession()
	overview, err := client.DashboardOverview(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(overview))
	} else {
		fmt.Fprintln(w, formatOverviewHuman(overview))
	}
	return 0
}

// runDashboardChart fetches and prints the requested chart
func runDashboardChart(ctx context.Context, w io.Writer, kind string) int {
	_, client, _ := newSession()

	switch kind {
	case "status", "category", "priority":
		var slices []api.ChartSlice
		var err error
		switch kind {
		case "status":
			slices, err = client.StatusChart(ctx)
		case "category":
			slices, err = client.CategoryChart(ctx)
		default:
			slices, err = client.PriorityChart(ctx)
		}
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(slices))
		} else {
			fmt.Fprintln(w, formatChartHuman(kind, slices))
		}

	case "all":
		// The three distribution charts are independent; fetch them in
		// parallel the way the web dashboard does.
		charts, err := client.Charts(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(charts))
		} else {
			fmt.Fprintln(w, formatChartHuman("status", charts.ByStatus))
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatChartHuman("category", charts.ByCategory))
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatChartHuman("priority", charts.ByPriority))
		}

	case "trend":
		points, err := client.TrendChart(ctx, chartTrendDays)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(points))
		} else {
			fmt.Fprintln(w, formatTrendHuman(points))
		}

	case "monthly":
		points, year, err := client.MonthlyChart(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(map[string]any{"year": year, "data": points}))
		} else {
			fmt.Fprintln(w, formatMonthlyHuman(points, year))
		}

	default:
		fmt.Fprintf(w, "Error: unknown chart %q\n", kind)
		return 1
	}
	return 0
}

// runDashboardReport fetches and prints the requested report
func runDashboardReport(ctx context.Context, w io.Writer, kind string) int {
	_, client, _ := newSession()

	switch kind {
	case "summary":
		report, err := client.SummaryReport(ctx, reportStartDate, reportEndDate)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(report))
		} else {
			fmt.Fprintln(w, formatSummaryHuman(report))
		}

	case "admin-performance":
		rows, err := client.AdminPerformanceReport(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(rows))
		} else {
			fmt.Fprintln(w, formatPerformanceHuman(rows))
		}

	default:
		fmt.Fprintf(w, "Error: unknown report %q\n", kind)
		return 1
	}
	return 0
}

// formatOverviewHuman renders the dashboard overview
func formatOverviewHuman(o *api.Overview) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Complaints:   %d
Students:     %d
Admins:       %d
Unassigned:   %d
Avg resolution: %.1f hours

Status counts:
  Pending:     %d
  In Progress: %d
  Resolved:    %d
  Closed:      %d
  Rejected:    %d

Today:     %d new, %d resolved
This week: %d new, %d resolved`,
		o.Overview.TotalComplaints, o.Overview.TotalStudents, o.Overview.TotalAdmins,
		o.Overview.UnassignedCount, o.Overview.AvgResolutionTimeHours,
		o.StatusCounts.Pending, o.StatusCounts.InProgress, o.StatusCounts.Resolved,
		o.StatusCounts.Closed, o.StatusCounts.Rejected,
		o.Today.New, o.Today.Resolved, o.ThisWeek.New, o.ThisWeek.Resolved)

	if len(o.RecentComplaints) > 0 {
		sb.WriteString("\n\nRecent complaints:\n")
		for _, c := range o.RecentComplaints {
			fmt.Fprintf(&sb, "  %s  %-12s %s\n", c.TicketNumber, c.Status, truncate(c.Title, 50))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatChartHuman renders a distribution chart as labeled bars
func formatChartHuman(title string, slices []api.ChartSlice) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "By %s:\n", title)
	if len(slices) == 0 {
		sb.WriteString("  no data")
		return sb.String()
	}

	max := 0
	for _, s := range slices {
		if s.Count > max {
			max = s.Count
		}
	}
	for _, s := range slices {
		fmt.Fprintf(&sb, "  %-20s %s %d\n", s.Label, styles.Bar(s.Count, max, 24), s.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatTrendHuman renders the daily trend as labeled bars
func formatTrendHuman(points []api.TrendPoint) string {
	if len(points) == 0 {
		return "no data"
	}

	max := 0
	for _, p := range points {
		if p.Count > max {
			max = p.Count
		}
	}
	var sb strings.Builder
	for _, p := range points {
		fmt.Fprintf(&sb, "%s %s %d\n", p.Date, styles.Bar(p.Count, max, 24), p.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatMonthlyHuman renders the per-month counts for the year
func formatMonthlyHuman(points []api.MonthPoint, year int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Complaints in %d:\n", year)

	max := 0
	for _, p := range points {
		if p.Count > max {
			max = p.Count
		}
	}
	for _, p := range points {
		fmt.Fprintf(&sb, "  %-10s %s %d\n", p.MonthName, styles.Bar(p.Count, max, 24), p.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatSummaryHuman renders the summary report
func formatSummaryHuman(r *api.SummaryReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Period: %s to %s\n", r.Period.StartDate, r.Period.EndDate)
	fmt.Fprintf(&sb, "Total complaints: %d\n", r.TotalComplaints)

	sb.WriteString("\nBy status:\n")
	sb.WriteString(formatBreakdown(r.StatusBreakdown))
	sb.WriteString("\nBy category:\n")
	sb.WriteString(formatBreakdown(r.CategoryBreakdown))
	sb.WriteString("\nBy priority:\n")
	sb.WriteString(formatBreakdown(r.PriorityBreakdown))

	fmt.Fprintf(&sb, "\nResolution: %d resolved, avg %.1fh (min %.1fh, max %.1fh)",
		r.ResolutionStats.ResolvedCount, r.ResolutionStats.AvgHours,
		r.ResolutionStats.MinHours, r.ResolutionStats.MaxHours)
	return sb.String()
}

// formatBreakdown renders a count map with stable ordering
func formatBreakdown(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %-20s %d\n", k, counts[k])
	}
	return sb.String()
}

// formatPerformanceHuman renders per-admin triage metrics
func formatPerformanceHuman(rows []api.AdminPerformance) string {
	if len(rows) == 0 {
		return "No admin activity"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADMIN\tASSIGNED\tRESOLVED\tPENDING\tRESPONSES\tRATE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.0f%%\n",
			r.AdminName, r.AssignedTotal, r.Resolved, r.Pending, r.ResponsesGiven, r.ResolutionRate)
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
