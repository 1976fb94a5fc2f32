// ABOUTME: Student endpoints: complaints, tracking, stats, notifications
// ABOUTME: List operations support the server's filter/search/sort/pagination parameters

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ComplaintFilter narrows complaint list requests. Zero values are
// omitted from the query string and fall back to server defaults.
type ComplaintFilter struct {
	Page      int
	PerPage   int
	Status    string
	Category  string
	Priority  string
	Search    string
	SortBy    string // created_at, updated_at, status, priority
	SortOrder string // asc, desc
}

func (f *ComplaintFilter) query() url.Values {
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
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sort_order", f.SortOrder)
	}
	return q
}

// ComplaintInput is the payload for submitting a complaint
type ComplaintInput struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
}

// ComplaintPage is one page of complaints with paging metadata
type ComplaintPage struct {
	Complaints []Complaint `json:"complaints"`
	Pagination Pagination  `json:"pagination"`
}

// NotificationPage is one page of notifications with paging metadata
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	Pagination    Pagination     `json:"pagination"`
}

// Categories fetches the complaint category vocabulary
func (c *Client) Categories(ctx context.Context) ([]CategoryOption, error) {
	var result struct {
		Categories []CategoryOption `json:"categories"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/student/categories", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// Priorities fetches the priority vocabulary
func (c *Client) Priorities(ctx context.Context) ([]CategoryOption, error) {
	var result struct {
		Priorities []CategoryOption `json:"priorities"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/student/priorities", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Priorities, nil
}

// MyComplaints lists the current student's complaints
func (c *Client) MyComplaints(ctx context.Context, filter *ComplaintFilter) (*ComplaintPage, error) {
	var result ComplaintPage
	if _, err := c.do(ctx, http.MethodGet, "/student/complaints", filter.query(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateComplaint submits a new complaint. The returned message carries
// the assigned ticket number for display.
func (c *Client) CreateComplaint(ctx context.Context, input *ComplaintInput) (*Complaint, string, error) {
	var result struct {
		Complaint Complaint `json:"complaint"`
	}
	msg, err := c.do(ctx, http.MethodPost, "/student/complaints", nil, input, &result)
	if err != nil {
		return nil, "", err
	}
	return &result.Complaint, msg, nil
}

// MyComplaint fetches one of the current student's complaints with responses
func (c *Client) MyComplaint(ctx context.Context, id int) (*Complaint, error) {
	var result struct {
		Complaint Complaint `json:"complaint"`
	}
	path := fmt.Sprintf("/student/complaints/%d", id)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Complaint, nil
}

// RespondToComplaint adds a comment to one of the student's own complaints
func (c *Client) RespondToComplaint(ctx context.Context, id int, message string) (*ComplaintResponse, error) {
	var result struct {
		Response ComplaintResponse `json:"response"`
	}
	path := fmt.Sprintf("/student/complaints/%d/responses", id)
	if _, err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"message": message}, &result); err != nil {
		return nil, err
	}
	return &result.Response, nil
}

// TrackComplaint looks a complaint up by its ticket number
func (c *Client) TrackComplaint(ctx context.Context, ticketNumber string) (*Complaint, error) {
	var result struct {
		Complaint Complaint `json:"complaint"`
	}
	path := "/student/complaints/" + url.PathEscape(ticketNumber) + "/track"
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Complaint, nil
}

// MyStats fetches the current student's complaint statistics
func (c *Client) MyStats(ctx context.Context) (*StudentStats, error) {
	var result StudentStats
	if _, err := c.do(ctx, http.MethodGet, "/student/stats", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Notifications lists the current student's notifications
func (c *Client) Notifications(ctx context.Context, page, perPage int, unreadOnly bool) (*NotificationPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	if unreadOnly {
		q.Set("unread_only", "true")
	}
	var result NotificationPage
	if _, err := c.do(ctx, http.MethodGet, "/student/notifications", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkNotificationRead marks a single notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	path := fmt.Sprintf("/student/notifications/%d/read", id)
	_, err := c.do(ctx, http.MethodPut, path, nil, nil, nil)
	return err
}

// MarkAllNotificationsRead marks every unread notification as read
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPut, "/student/notifications/read-all", nil, nil, nil)
	return err
}
