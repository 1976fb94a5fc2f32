// ABOUTME: Admin commands for complaint triage and user management
// ABOUTME: Covers status, priority, assignment, responses, notes, and accounts

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
	"github.com/basgenix/uni-complaint-system/internal/validate"
)

var (
	adminListFilter api.AdminComplaintFilter

	adminStatusComment string
	adminAssignTo      int
	adminUnassign      bool
	adminRespondMsg    string
	adminRespondHidden bool

	adminUserFilter   api.UserFilter
	adminUserActive   string
	newAdminInput     api.RegisterAdminInput
	newAdminSuperRole bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Triage complaints and manage users (admin only)",
}

var adminComplaintsCmd = &cobra.Command{
	Use:   "complaints",
	Short: "List all complaints",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminComplaints(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show any complaint with internal responses",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a complaint's status",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminStatus(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminPriorityCmd = &cobra.Command{
	Use:   "priority <id> <priority>",
	Short: "Change a complaint's priority",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminPriority(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminAssignCmd = &cobra.Command{
	Use:   "assign <id>",
	Short: "Assign a complaint to an admin or unassign it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminAssign(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminRespondCmd = &cobra.Command{
	Use:   "respond <id>",
	Short: "Add an admin response, optionally internal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminRespond(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminNotesCmd = &cobra.Command{
	Use:   "notes <id> <notes>",
	Short: "Replace a complaint's internal notes",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminNotes(ctx, os.Stdout, args[0], strings.Join(args[1:], " "))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminUsers(ctx, os.Stdout, cmd)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminUserCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Show a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminUser(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminToggleCmd = &cobra.Command{
	Use:   "toggle-active <user-id>",
	Short: "Activate or deactivate a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminToggle(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminListAdminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "List admin accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminListAdmins(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account (super admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	adminComplaintsCmd.Flags().IntVar(&adminListFilter.Page, "page", 1, "Page number")
	adminComplaintsCmd.Flags().IntVar(&adminListFilter.PerPage, "per-page", 10, "Items per page")
	adminComplaintsCmd.Flags().StringVar(&adminListFilter.Status, "status", "", "Filter by status")
	adminComplaintsCmd.Flags().StringVar(&adminListFilter.Category, "category", "", "Filter by category")
	adminComplaintsCmd.Flags().StringVar(&adminListFilter.Priority, "priority", "", "Filter by priority")
	adminComplaintsCmd.Flags().StringVar(&adminListFilter.Search, "search", "", "Search title and description")
	adminComplaintsCmd.Flags().IntVar(&adminListFilter.AssignedTo, "assigned-to", 0, "Filter by assigned admin ID")
	adminComplaintsCmd.Flags().BoolVar(&adminListFilter.Unassigned, "unassigned", false, "Only unassigned complaints")
	adminComplaintsCmd.Flags().StringVar(&adminListFilter.StartDate, "start-date", "", "Created on or after (YYYY-MM-DD)")
	adminComplaintsCmd.Flags().StringVar(&adminListFilter.EndDate, "end-date", "", "Created on or before (YYYY-MM-DD)")

	adminStatusCmd.Flags().StringVar(&adminStatusComment, "comment", "", "Comment added with the status change")

	adminAssignCmd.Flags().IntVar(&adminAssignTo, "to", 0, "Admin ID to assign to")
	adminAssignCmd.Flags().BoolVar(&adminUnassign, "unassign", false, "Remove the current assignee")

	adminRespondCmd.Flags().StringVarP(&adminRespondMsg, "message", "m", "", "Response message")
	adminRespondCmd.Flags().BoolVar(&adminRespondHidden, "internal", false, "Hide the response from the student")

	adminUsersCmd.Flags().IntVar(&adminUserFilter.Page, "page", 1, "Page number")
	adminUsersCmd.Flags().IntVar(&adminUserFilter.PerPage, "per-page", 10, "Items per page")
	adminUsersCmd.Flags().StringVar(&adminUserFilter.Role, "role", "", "Filter by role")
	adminUsersCmd.Flags().StringVar(&adminUserFilter.Search, "search", "", "Search name, email, matric number")
	adminUsersCmd.Flags().StringVar(&adminUserActive, "active", "", "Filter by active state (true or false)")

	adminCreateCmd.Flags().StringVar(&newAdminInput.Email, "email", "", "Admin email")
	adminCreateCmd.Flags().StringVar(&newAdminInput.Password, "password", "", "Admin password")
	adminCreateCmd.Flags().StringVar(&newAdminInput.FullName, "full-name", "", "Full name")
	adminCreateCmd.Flags().StringVar(&newAdminInput.Department, "department", "", "Department")
	adminCreateCmd.Flags().BoolVar(&newAdminSuperRole, "super", false, "Grant the super_admin role")

	adminCmd.AddCommand(adminComplaintsCmd)
	adminCmd.AddCommand(adminShowCmd)
	adminCmd.AddCommand(adminStatusCmd)
	adminCmd.AddCommand(adminPriorityCmd)
	adminCmd.AddCommand(adminAssignCmd)
	adminCmd.AddCommand(adminRespondCmd)
	adminCmd.AddCommand(adminNotesCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminUserCmd)
	adminCmd.AddCommand(adminToggleCmd)
	adminCmd.AddCommand(adminListAdminsCmd)
	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminComplaints(ctx context.Context, w io.Writer) int {
	_, client, _ := newSession()
	page, err := client.AllComplaints(ctx, &adminListFilter)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(page))
	} else {
		fmt.Fprintln(w, formatAdminComplaintList(page))
	}
	return 0
}

func runAdminShow(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid complaint id %q\n", arg)
		return 1
	}

	_, client, _ := newSession()
	complaint, err := client.Complaint(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(complaint))
		return 0
	}
	out := formatComplaintDetail(complaint)
	if complaint.AdminNotes != "" {
		out += fmt.Sprintf("\n\nInternal notes:\n%s", complaint.AdminNotes)
	}
	fmt.Fprintln(w, out)
	return 0
}

func runAdminStatus(ctx context.Context, w io.Writer, arg, status string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid complaint id %q\n", arg)
		return 1
	}
	if err := validate.Status(status); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	_, client, _ := newSession()
	complaint, err := client.SetComplaintStatus(ctx, id, status, adminStatusComment)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(complaint))
	} else {
		fmt.Fprintf(w, "%s is now %s\n", complaint.TicketNumber, complaint.Status)
	}
	return 0
}

func runAdminPriority(ctx context.Context, w io.Writer, arg, priority string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid complaint id %q\n", arg)
		return 1
	}
	if err := validate.Priority(priority); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	_, client, _ := newSession()
	complaint, err := client.SetComplaintPriority(ctx, id, priority)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(complaint))
	} else {
		fmt.Fprintf(w, "%s priority is now %s\n", complaint.TicketNumber, complaint.Priority)
	}
	return 0
}

func runAdminAssign(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid complaint id %q\n", arg)
		return 1
	}
	if adminAssignTo == 0 && !adminUnassign {
		fmt.Fprintln(w, "Error: pass --to <admin-id> or --unassign")
		return 1
	}

	var adminID *int
	if !adminUnassign {
		adminID = &adminAssignTo
	}

	_, client, _ := newSession()
	complaint, err := client.AssignComplaint(ctx, id, adminID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(complaint))
	} else if complaint.AssignedAdmin != nil {
		fmt.Fprintf(w, "%s assigned to %s\n", complaint.TicketNumber, complaint.AssignedAdmin.FullName)
	} else {
		fmt.Fprintf(w, "%s unassigned\n", complaint.TicketNumber)
	}
	return 0
}

func runAdminRespond(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid complaint id %q\n", arg)
		return 1
	}
	if strings.TrimSpace(adminRespondMsg) == "" {
		fmt.Fprintln(w, "Error: message is required")
		return 1
	}

	_, client, _ := newSession()
	response, err := client.AddAdminResponse(ctx, id, adminRespondMsg, adminRespondHidden)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(response))
	} else if response.IsInternal {
		fmt.Fprintln(w, "Internal response added")
	} else {
		fmt.Fprintln(w, "Response added")
	}
	return 0
}

func runAdminNotes(ctx context.Context, w io.Writer, arg, notes string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid complaint id %q\n", arg)
		return 1
	}

	_, client, _ := newSession()
	if _, err := client.SetComplaintNotes(ctx, id, notes); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Notes updated")
	return 0
}

func runAdminUsers(ctx context.Context, w io.Writer, cmd *cobra.Command) int {
	if cmd.Flags().Changed("active") {
		active, err := strconv.ParseBool(adminUserActive)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid --active value %q\n", adminUserActive)
			return 1
		}
		adminUserFilter.Active = &active
	}

	_, client, _ := newSession()
	page, err := client.Users(ctx, &adminUserFilter)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(page))
	} else {
		fmt.Fprintln(w, formatUserList(page.Users))
	}
	return 0
}

func runAdminUser(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid user id %q\n", arg)
		return 1
	}

	_, client, _ := newSession()
	user, err := client.UserByID(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintln(w, formatUserDetail(user))
	}
	return 0
}

func runAdminToggle(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid user id %q\n", arg)
		return 1
	}

	_, client, _ := newSession()
	user, err := client.ToggleUserActive(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}
	fmt.Fprintf(w, "%s %s\n", user.FullName, state)
	return 0
}

func runAdminListAdmins(ctx context.Context, w io.Writer) int {
	_, client, _ := newSession()
	admins, err := client.Admins(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(admins))
	} else {
		fmt.Fprintln(w, formatUserList(admins))
	}
	return 0
}

func runAdminCreate(ctx context.Context, w io.Writer) int {
	in := newAdminInput
	in.Role = api.RoleAdmin
	if newAdminSuperRole {
		in.Role = api.RoleSuperAdmin
	}

	if err := validate.Email(in.Email); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := validate.Password(in.Password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if strings.TrimSpace(in.FullName) == "" {
		fmt.Fprintln(w, "Error: full name is required")
		return 1
	}

	_, client, _ := newSession()
	user, err := client.RegisterAdmin(ctx, &in)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintf(w, "Admin account created: %s (%s)\n", user.FullName, user.Role)
	}
	return 0
}

// formatAdminComplaintList renders complaints with their student column
func formatAdminComplaintList(page *api.ComplaintPage) string {
	if len(page.Complaints) == 0 {
		return "No complaints found"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTICKET\tTITLE\tSTUDENT\tSTATUS\tPRIORITY\tASSIGNED")
	for _, c := range page.Complaints {
		student := ""
		if c.Student != nil {
			student = c.Student.FullName
		}
		assigned := "-"
		if c.AssignedAdmin != nil {
			assigned = c.AssignedAdmin.FullName
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.TicketNumber, truncate(c.Title, 30), student, c.Status, c.Priority, assigned)
	}
	tw.Flush()
	fmt.Fprintf(&sb, "Page %d of %d (%d total)",
		page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.TotalItems)
	return sb.String()
}

// formatUserDetail renders a single user account
func formatUserDetail(u *api.User) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", u.FullName)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	if u.MatricNumber != "" {
		fmt.Fprintf(tw, "Matric:\t%s\n", u.MatricNumber)
	}
	if u.Department != "" {
		fmt.Fprintf(tw, "Department:\t%s\n", u.Department)
	}
	if u.Faculty != "" {
		fmt.Fprintf(tw, "Faculty:\t%s\n", u.Faculty)
	}
	if u.Phone != "" {
		fmt.Fprintf(tw, "Phone:\t%s\n", u.Phone)
	}
	fmt.Fprintf(tw, "Active:\t%t\n", u.IsActive)
	if u.CreatedAt != "" {
		fmt.Fprintf(tw, "Joined:\t%s\n", shortDate(u.CreatedAt))
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// formatUserList renders user accounts as an aligned table
func formatUserList(users []api.User) string {
	if len(users) == 0 {
		return "No users found"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.FullName, u.Email, u.Role, u.IsActive)
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
