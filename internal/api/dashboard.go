// ABOUTME: Dashboard endpoints: overview, chart datasets, and reports
// ABOUTME: Distribution charts are fetched concurrently since the dashboard renders them together

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// ChartData bundles the three distribution charts the dashboard
// renders side by side.
type ChartData struct {
	ByStatus   []ChartSlice
	ByCategory []ChartSlice
	ByPriority []ChartSlice
}

// DashboardOverview fetches the admin dashboard headline numbers
func (c *Client) DashboardOverview(ctx context.Context) (*Overview, error) {
	var result Overview
	if _, err := c.do(ctx, http.MethodGet, "/dashboard/overview", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// chart fetches a single distribution chart dataset
func (c *Client) chart(ctx context.Context, name string) ([]ChartSlice, error) {
	var result struct {
		ChartData []ChartSlice `json:"chart_data"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/dashboard/charts/"+name, nil, nil, &result); err != nil {
		return nil, err
	}
	return result.ChartData, nil
}

// StatusChart fetches complaint distribution by status
func (c *Client) StatusChart(ctx context.Context) ([]ChartSlice, error) {
	return c.chart(ctx, "status")
}

// CategoryChart fetches complaint distribution by category
func (c *Client) CategoryChart(ctx context.Context) ([]ChartSlice, error) {
	return c.chart(ctx, "category")
}

// PriorityChart fetches complaint distribution by priority
func (c *Client) PriorityChart(ctx context.Context) ([]ChartSlice, error) {
	return c.chart(ctx, "priority")
}

// Charts fetches all three distribution charts concurrently. Each
// request independently carries the access token; a 401 on any of them
// triggers its own refresh cycle.
func (c *Client) Charts(ctx context.Context) (*ChartData, error) {
	var data ChartData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slices, err := c.StatusChart(ctx)
		data.ByStatus = slices
		return err
	})
	g.Go(func() error {
		slices, err := c.CategoryChart(ctx)
		data.ByCategory = slices
		return err
	})
	g.Go(func() error {
		slices, err := c.PriorityChart(ctx)
		data.ByPriority = slices
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// TrendChart fetches daily complaint counts for the last days days
// (server clamps to 7..365).
func (c *Client) TrendChart(ctx context.Context, days int) ([]TrendPoint, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var result struct {
		ChartData []TrendPoint `json:"chart_data"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/dashboard/charts/trend", q, nil, &result); err != nil {
		return nil, err
	}
	return result.ChartData, nil
}

// MonthlyChart fetches per-month complaint counts for the current year
func (c *Client) MonthlyChart(ctx context.Context) ([]MonthPoint, int, error) {
	var result struct {
		ChartData []MonthPoint `json:"chart_data"`
		Year      int          `json:"year"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/dashboard/charts/monthly", nil, nil, &result); err != nil {
		return nil, 0, err
	}
	return result.ChartData, result.Year, nil
}

// SummaryReport fetches aggregate statistics for a date range
// (YYYY-MM-DD; empty strings fall back to the server's last-30-days default).
func (c *Client) SummaryReport(ctx context.Context, startDate, endDate string) (*SummaryReport, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	var result struct {
		Report SummaryReport `json:"report"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/dashboard/reports/summary", q, nil, &result); err != nil {
		return nil, err
	}
	return &result.Report, nil
}

// AdminPerformanceReport fetches per-admin triage statistics (super admin only)
func (c *Client) AdminPerformanceReport(ctx context.Context) ([]AdminPerformance, error) {
	var result struct {
		Performance []AdminPerformance `json:"performance"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/dashboard/reports/admin-performance", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Performance, nil
}
