// ABOUTME: Admin endpoints: triage, assignment, responses, notes, user management
// ABOUTME: Admin complaint listing adds assignment and date-range filters on top of the student set

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AdminComplaintFilter extends ComplaintFilter with triage-side filters
type AdminComplaintFilter struct {
	ComplaintFilter
	AssignedTo int    // filter by assigned admin ID
	Unassigned bool   // only complaints with no assignee
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
}

func (f *AdminComplaintFilter) query() url.Values {
	if f == nil {
		return url.Values{}
	}
	q := f.ComplaintFilter.query()
	if f.AssignedTo > 0 {
		q.Set("assigned_to", strconv.Itoa(f.AssignedTo))
	}
	if f.Unassigned {
		q.Set("unassigned", "true")
	}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	return q
}

// UserFilter narrows admin user listing
type UserFilter struct {
	Page    int
	PerPage int
	Role    string
	Search  string
	Active  *bool
}

func (f *UserFilter) query() url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Active != nil {
		q.Set("is_active", strconv.FormatBool(*f.Active))
	}
	return q
}

// UserPage is one page of users with paging metadata
type UserPage struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// AllComplaints lists complaints across all students (admin only)
func (c *Client) AllComplaints(ctx context.Context, filter *AdminComplaintFilter) (*ComplaintPage, error) {
	var result ComplaintPage
	if _, err := c.do(ctx, http.MethodGet, "/admin/complaints", filter.query(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Complaint fetches any complaint with its responses, including
// internal notes (admin only).
func (c *Client) Complaint(ctx context.Context, id int) (*Complaint, error) {
	var result struct {
		Complaint Complaint `json:"complaint"`
	}
	path := fmt.Sprintf("/admin/complaints/%d", id)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Complaint, nil
}

// SetComplaintStatus updates a complaint's status. An optional comment
// is recorded as a visible response explaining the change.
func (c *Client) SetComplaintStatus(ctx context.Context, id int, status, comment string) (*Complaint, error) {
	body := map[string]string{"status": status}
	if comment != "" {
		body["comment"] = comment
	}
	var result struct {
		Complaint Complaint `json:"complaint"`
	}
	path := fmt.Sprintf("/admin/complaints/%d/status", id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, body, &result); err != nil {
		return nil, err
	}
	return &result.Complaint, nil
}

// SetComplaintPriority updates a complaint's priority
func (c *Client) SetComplaintPriority(ctx context.Context, id int, priority string) (*Complaint, error) {
	var result struct {
		Complaint Complaint `json:"complaint"`
	}
	path := fmt.Sprintf("/admin/complaints/%d/priority", id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, map[string]string{"priority": priority}, &result); err != nil {
		return nil, err
	}
	return &result.Complaint, nil
}

// AssignComplaint assigns a complaint to an admin. A nil adminID
// unassigns it.
func (c *Client) AssignComplaint(ctx context.Context, id int, adminID *int) (*Complaint, error) {
	var result struct {
		Complaint Complaint `json:"complaint"`
	}
	path := fmt.Sprintf("/admin/complaints/%d/assign", id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, map[string]*int{"admin_id": adminID}, &result); err != nil {
		return nil, err
	}
	return &result.Complaint, nil
}

// AddAdminResponse adds a response to any complaint. Internal responses
// are visible only to admins.
func (c *Client) AddAdminResponse(ctx context.Context, id int, message string, internal bool) (*ComplaintResponse, error) {
	body := map[string]any{"message": message, "is_internal": internal}
	var result struct {
		Response ComplaintResponse `json:"response"`
	}
	path := fmt.Sprintf("/admin/complaints/%d/responses", id)
	if _, err := c.do(ctx, http.MethodPost, path, nil, body, &result); err != nil {
		return nil, err
	}
	return &result.Response, nil
}

// SetComplaintNotes replaces a complaint's internal admin notes
func (c *Client) SetComplaintNotes(ctx context.Context, id int, notes string) (*Complaint, error) {
	var result struct {
		Complaint Complaint `json:"complaint"`
	}
	path := fmt.Sprintf("/admin/complaints/%d/notes", id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, map[string]string{"notes": notes}, &result); err != nil {
		return nil, err
	}
	return &result.Complaint, nil
}

// Users lists user accounts (admin only)
func (c *Client) Users(ctx context.Context, filter *UserFilter) (*UserPage, error) {
	var result UserPage
	if _, err := c.do(ctx, http.MethodGet, "/admin/users", filter.query(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UserByID fetches a single user account (admin only)
func (c *Client) UserByID(ctx context.Context, id int) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	path := fmt.Sprintf("/admin/users/%d", id)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// ToggleUserActive activates or deactivates a user account
func (c *Client) ToggleUserActive(ctx context.Context, id int) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	path := fmt.Sprintf("/admin/users/%d/toggle-active", id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// Admins lists admin accounts, for assignment pickers
func (c *Client) Admins(ctx context.Context) ([]User, error) {
	var result struct {
		Admins []User `json:"admins"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/admin/admins", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Admins, nil
}
