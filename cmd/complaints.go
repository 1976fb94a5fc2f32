// ABOUTME: Student complaint commands: list, new, show, track, respond
// ABOUTME: Submits and follows complaints against the student endpoints

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/tui/widgets"
	"github.com/basgenix/uni-complaint-system/internal/validate"
)

var (
	complaintListFilter api.ComplaintFilter
	complaintInput      api.ComplaintInput
	respondMessage      string
)

var complaintsCmd = &cobra.Command{
	Use:   "complaints",
	Short: "Submit and follow your complaints",
}

var complaintsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your complaints",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runComplaintsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var complaintsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Submit a new complaint",
	Long:  `Submit a complaint. Prompts interactively for anything not given as a flag and prints the assigned ticket number.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runComplaintsNew(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var complaintsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one of your complaints with its responses",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runComplaintsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var complaintsTrackCmd = &cobra.Command{
	Use:   "track <ticket>",
	Short: "Track a complaint by ticket number",
	Long:  `Look up a complaint by its ticket number (TKT-YYYY-XXXXXX). Works without logging in.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runComplaintsTrack(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var complaintsRespondCmd = &cobra.Command{
	Use:   "respond <id>",
	Short: "Add a response to one of your complaints",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runComplaintsRespond(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	complaintsListCmd.Flags().IntVar(&complaintListFilter.Page, "page", 1, "Page number")
	complaintsListCmd.Flags().IntVar(&complaintListFilter.PerPage, "per-page", 10, "Items per page")
	complaintsListCmd.Flags().StringVar(&complaintListFilter.Status, "status", "", "Filter by status")
	complaintsListCmd.Flags().StringVar(&complaintListFilter.Category, "category", "", "Filter by category")
	complaintsListCmd.Flags().StringVar(&complaintListFilter.Priority, "priority", "", "Filter by priority")
	complaintsListCmd.Flags().StringVar(&complaintListFilter.Search, "search", "", "Search title and description")
	complaintsListCmd.Flags().StringVar(&complaintListFilter.SortBy, "sort-by", "", "Sort field (created_at, updated_at, status, priority)")
	complaintsListCmd.Flags().StringVar(&complaintListFilter.SortOrder, "sort-order", "", "Sort order (asc, desc)")

	complaintsNewCmd.Flags().StringVar(&complaintInput.Category, "category", "", "Complaint category")
	complaintsNewCmd.Flags().StringVar(&complaintInput.Title, "title", "", "Short title")
	complaintsNewCmd.Flags().StringVar(&complaintInput.Description, "description", "", "Full description")
	complaintsNewCmd.Flags().StringVar(&complaintInput.Priority, "priority", "", "Priority (low, medium, high, urgent)")

	complaintsRespondCmd.Flags().StringVarP(&respondMessage, "message", "m", "", "Response message")

	complaintsCmd.AddCommand(complaintsListCmd)
	complaintsCmd.AddCommand(complaintsNewCmd)
	complaintsCmd.AddCommand(complaintsShowCmd)
	complaintsCmd.AddCommand(complaintsTrackCmd)
	complaintsCmd.AddCommand(complaintsRespondCmd)
	rootCmd.AddCommand(complaintsCmd)
}

// runComplaintsList fetches one page of the student's complaints
func runComplaintsList(ctx context.Context, w io.Writer) int {
	if complaintListFilter.Status != "" {
		if err := validate.Status(complaintListFilter.Status); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}
	if complaintListFilter.Priority != "" {
		if err := validate.Priority(complaintListFilter.Priority); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	_, client, _ := newSession()
	page, err := client.MyComplaints(ctx, &complaintListFilter)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(page))
	} else {
		fmt.Fprintln(w, formatComplaintList(page))
	}
	return 0
}

// runComplaintsNew submits a complaint and prints the ticket number
func runComplaintsNew(ctx context.Context, w io.Writer) int {
	in := complaintInput

	if in.Category == "" || in.Title == "" || in.Description == "" {
		categoryOptions := make([]huh.Option[string], 0, len(api.ValidCategories))
		for _, c := range api.ValidCategories {
			categoryOptions = append(categoryOptions, huh.NewOption(c, c))
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Category").Options(categoryOptions...).Value(&in.Category),
			huh.NewInput().Title("Title").Value(&in.Title),
			huh.NewText().Title("Description").Value(&in.Description),
			huh.NewSelect[string]().Title("Priority").Options(
				huh.NewOption("Low", api.PriorityLow),
				huh.NewOption("Medium", api.PriorityMedium),
				huh.NewOption("High", api.PriorityHigh),
				huh.NewOption("Urgent", api.PriorityUrgent),
			).Value(&in.Priority),
		))
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	if err := validate.Category(in.Category); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if in.Priority != "" {
		if err := validate.Priority(in.Priority); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}
	if err := validate.Required(map[string]string{
		"title":       in.Title,
		"description": in.Description,
	}, "title", "description"); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	_, client, _ := newSession()
	complaint, message, err := client.CreateComplaint(ctx, &in)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(complaint))
	} else {
		fmt.Fprintf(w, "%s\nTicket: %s\n", message, complaint.TicketNumber)
	}
	return 0
}

// runComplaintsShow fetches one complaint with its responses
func runComplaintsShow(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid complaint id %q\n", arg)
		return 1
	}

	_, client, _ := newSession()
	complaint, err := client.MyComplaint(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(complaint))
	} else {
		fmt.Fprintln(w, formatComplaintDetail(complaint))
	}
	return 0
}

// runComplaintsTrack looks a complaint up by ticket number
func runComplaintsTrack(ctx context.Context, w io.Writer, ticket string) int {
	_, client, _ := newSession()
	complaint, err := client.TrackComplaint(ctx, ticket)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(complaint))
	} else {
		fmt.Fprintln(w, formatComplaintDetail(complaint))
	}
	return 0
}

// runComplaintsRespond adds a student response to a complaint
func runComplaintsRespond(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid complaint id %q\n", arg)
		return 1
	}

	message := respondMessage
	if message == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewText().Title("Response").Value(&message),
		))
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}
	if strings.TrimSpace(message) == "" {
		fmt.Fprintln(w, "Error: message is required")
		return 1
	}

	_, client, _ := newSession()
	response, err := client.RespondToComplaint(ctx, id, message)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(response))
	} else {
		fmt.Fprintln(w, "Response added")
	}
	return 0
}

// formatComplaintList renders a complaint page as an aligned table
func formatComplaintList(page *api.ComplaintPage) string {
	if len(page.Complaints) == 0 {
		return "No complaints found"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTICKET\tTITLE\tSTATUS\tPRIORITY\tUPDATED")
	for _, c := range page.Complaints {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.TicketNumber, truncate(c.Title, 40), c.Status, c.Priority, shortDate(c.UpdatedAt))
	}
	tw.Flush()
	fmt.Fprintf(&sb, "Page %d of %d (%d total)",
		page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.TotalItems)
	return sb.String()
}

// formatComplaintDetail renders one complaint with its responses
func formatComplaintDetail(c *api.Complaint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s %s\n", c.TicketNumber, widgets.StatusBadge(c.Status), widgets.PriorityBadge(c.Priority))
	fmt.Fprintf(&sb, "Title:    %s\n", c.Title)
	fmt.Fprintf(&sb, "Category: %s\n", c.Category)
	fmt.Fprintf(&sb, "Created:  %s\n", shortDate(c.CreatedAt))
	if c.AssignedAdmin != nil {
		fmt.Fprintf(&sb, "Assigned: %s\n", c.AssignedAdmin.FullName)
	}
	fmt.Fprintf(&sb, "\n%s\n", c.Description)

	if len(c.Responses) > 0 {
		fmt.Fprintf(&sb, "\nResponses (%d):\n", len(c.Responses))
		for _, r := range c.Responses {
			author := "Student"
			if r.Author != nil {
				author = r.Author.FullName
			}
			fmt.Fprintf(&sb, "  [%s] %s: %s\n", shortDate(r.CreatedAt), author, r.Message)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatJSON renders any payload as indented JSON
func formatJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
