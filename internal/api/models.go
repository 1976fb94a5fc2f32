// ABOUTME: Payload models for the university complaint management API
// ABOUTME: Mirrors the server's user, complaint, response, and notification shapes

package api

// User roles
const (
	RoleStudent    = "student"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Complaint statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
	StatusRejected   = "rejected"
)

// Complaint priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidStatuses lists the complaint statuses accepted by the server
var ValidStatuses = []string{StatusPending, StatusInProgress, StatusResolved, StatusClosed, StatusRejected}

// ValidPriorities lists the complaint priorities accepted by the server
var ValidPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ValidCategories lists the complaint categories accepted by the server
var ValidCategories = []string{
	"transcript",
	"registration",
	"fees_payment",
	"accommodation",
	"examination",
	"clearance",
	"scholarship",
	"library",
	"id_card",
	"course_registration",
	"result_issues",
	"certificate",
	"admission",
	"transfer",
	"medical",
	"security",
	"facilities",
	"academic_advising",
	"other",
}

// User represents a student or administrator account
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email,omitempty"`
	FullName     string `json:"full_name"`
	MatricNumber string `json:"matric_number,omitempty"`
	Department   string `json:"department,omitempty"`
	Faculty      string `json:"faculty,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// IsAdmin reports whether the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsSuperAdmin reports whether the user is a super admin
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// StudentRef is the embedded student summary on a complaint
type StudentRef struct {
	ID           int    `json:"id"`
	FullName     string `json:"full_name"`
	MatricNumber string `json:"matric_number,omitempty"`
	Email        string `json:"email,omitempty"`
	Department   string `json:"department,omitempty"`
	Faculty      string `json:"faculty,omitempty"`
}

// AdminRef is the embedded assigned-admin summary on a complaint
type AdminRef struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// Complaint represents a submitted complaint ticket
type Complaint struct {
	ID              int                 `json:"id"`
	TicketNumber    string              `json:"ticket_number"`
	UserID          int                 `json:"user_id"`
	Category        string              `json:"category"`
	CategoryDisplay string              `json:"category_display,omitempty"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Status          string              `json:"status"`
	StatusDisplay   string              `json:"status_display,omitempty"`
	Priority        string              `json:"priority"`
	PriorityDisplay string              `json:"priority_display,omitempty"`
	AssignedTo      *int                `json:"assigned_to"`
	Attachments     []string            `json:"attachments,omitempty"`
	AdminNotes      string              `json:"admin_notes,omitempty"`
	ResponseCount   int                 `json:"response_count"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at,omitempty"`
	ResolvedAt      string              `json:"resolved_at,omitempty"`
	Student         *StudentRef         `json:"student,omitempty"`
	AssignedAdmin   *AdminRef           `json:"assigned_admin,omitempty"`
	Responses       []ComplaintResponse `json:"responses,omitempty"`
}

// ComplaintResponse represents a response or comment on a complaint
type ComplaintResponse struct {
	ID          int      `json:"id"`
	ComplaintID int      `json:"complaint_id"`
	UserID      int      `json:"user_id"`
	Message     string   `json:"message"`
	IsInternal  bool     `json:"is_internal"`
	Attachments []string `json:"attachments,omitempty"`
	CreatedAt   string   `json:"created_at"`
	Author      *AdminRef `json:"author,omitempty"`
}

// Notification represents a user notification
type Notification struct {
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	ComplaintID *int   `json:"complaint_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

// Pagination carries paging metadata alongside list responses
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	NextPage   *int `json:"next_page"`
	PrevPage   *int `json:"prev_page"`
}

// CategoryOption is a category vocabulary entry with its display label
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatusCounts breaks complaint counts down by status
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
	Rejected   int `json:"rejected"`
}

// StudentStats summarizes the current student's complaints
type StudentStats struct {
	Statistics struct {
		Total      int `json:"total"`
		Pending    int `json:"pending"`
		InProgress int `json:"in_progress"`
		Resolved   int `json:"resolved"`
		Closed     int `json:"closed"`
		Rejected   int `json:"rejected"`
	} `json:"statistics"`
	RecentComplaints    []Complaint `json:"recent_complaints"`
	UnreadNotifications int         `json:"unread_notifications"`
}

// Overview is the admin dashboard headline block
type Overview struct {
	Overview struct {
		TotalComplaints        int     `json:"total_complaints"`
		TotalStudents          int     `json:"total_students"`
		TotalAdmins            int     `json:"total_admins"`
		UnassignedCount        int     `json:"unassigned_count"`
		AvgResolutionTimeHours float64 `json:"avg_resolution_time_hours"`
	} `json:"overview"`
	StatusCounts StatusCounts `json:"status_counts"`
	Today        struct {
		New      int `json:"new"`
		Resolved int `json:"resolved"`
	} `json:"today"`
	ThisWeek struct {
		New      int `json:"new"`
		Resolved int `json:"resolved"`
	} `json:"this_week"`
	RecentComplaints []Complaint `json:"recent_complaints"`
}

// ChartSlice is one labeled segment of a distribution chart. Exactly one
// of Status, Category, or Priority is set depending on the chart requested.
type ChartSlice struct {
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

// TrendPoint is one day of the complaint trend line
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MonthPoint is one month of the current-year complaint counts
type MonthPoint struct {
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Count     int    `json:"count"`
}

// SummaryReport aggregates complaint statistics over a date range
type SummaryReport struct {
	Period struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	} `json:"period"`
	TotalComplaints   int            `json:"total_complaints"`
	StatusBreakdown   map[string]int `json:"status_breakdown"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
	PriorityBreakdown map[string]int `json:"priority_breakdown"`
	ResolutionStats   struct {
		ResolvedCount int     `json:"resolved_count"`
		AvgHours      float64 `json:"avg_hours"`
		MinHours      float64 `json:"min_hours"`
		MaxHours      float64 `json:"max_hours"`
	} `json:"resolution_stats"`
}

// AdminPerformance is one admin's triage record
type AdminPerformance struct {
	AdminID        int     `json:"admin_id"`
	AdminName      string  `json:"admin_name"`
	Email          string  `json:"email"`
	AssignedTotal  int     `json:"assigned_total"`
	Resolved       int     `json:"resolved"`
	Pending        int     `json:"pending"`
	ResponsesGiven int     `json:"responses_given"`
	ResolutionRate float64 `json:"resolution_rate"`
}
