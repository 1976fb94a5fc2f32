// ABOUTME: Tests for the dashboard commands
// ABOUTME: Verifies overview, chart, and report output formatting

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/basgenix/uni-complaint-system/internal/api"
)

func TestDashboardOverviewCommand(t *testing.T) {
	useStubBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/overview" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		envelope(w, http.StatusOK, "ok", map[string]any{
			"overview": map[string]any{
				"total_complaints": 42, "total_students": 10, "total_admins": 3,
				"unassigned_count": 5, "avg_resolution_time_hours": 18.5,
			},
			"status_counts": map[string]int{"pending": 12, "in_progress": 8, "resolved": 20, "closed": 1, "rejected": 1},
			"today":         map[string]int{"new": 2, "resolved": 1},
			"this_week":     map[string]int{"new": 9, "resolved": 6},
		})
	}))

	var buf bytes.Buffer
	if exitCode := runDashboardOverview(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Complaints:   42") {
		t.Errorf("expected total complaints in output, got %q", out)
	}
	if !strings.Contains(out, "18.5 hours") {
		t.Errorf("expected resolution time in output, got %q", out)
	}
}

func TestDashboardChartCommand_All(t *testing.T) {
	useStubBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var data []map[string]any
		switch r.URL.Path {
		case "/dashboard/charts/status":
			data = []map[string]any{{"status": "pending", "label": "Pending", "count": 12}}
		case "/dashboard/charts/category":
			data = []map[string]any{{"category": "transcript", "label": "Transcript", "count": 7}}
		case "/dashboard/charts/priority":
			data = []map[string]any{{"priority": "high", "label": "High", "count": 4}}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		envelope(w, http.StatusOK, "ok", map[string]any{"chart_data": data})
	}))

	var buf bytes.Buffer
	if exitCode := runDashboardChart(context.Background(), &buf, "all"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"Pending", "Transcript", "High"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in combined chart output, got %q", want, out)
		}
	}
}

func TestDashboardReportCommand_Summary(t *testing.T) {
	useStubBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/reports/summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("start_date"); got != "2026-08-01" {
			t.Errorf("expected start_date query, got %q", got)
		}
		envelope(w, http.StatusOK, "ok", map[string]any{
			"report": map[string]any{
				"period":             map[string]string{"start_date": "2026-08-01", "end_date": "2026-08-29"},
				"total_complaints":   15,
				"status_breakdown":   map[string]int{"pending": 5, "resolved": 10},
				"category_breakdown": map[string]int{"transcript": 15},
				"priority_breakdown": map[string]int{"medium": 15},
				"resolution_stats":   map[string]any{"resolved_count": 10, "avg_hours": 20.0, "min_hours": 1.0, "max_hours": 70.0},
			},
		})
	}))
	reportStartDate, reportEndDate = "2026-08-01", "2026-08-29"
	defer func() { reportStartDate, reportEndDate = "", "" }()

	var buf bytes.Buffer
	if exitCode := runDashboardReport(context.Background(), &buf, "summary"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Total complaints: 15") {
		t.Errorf("expected total in output, got %q", out)
	}
	if !strings.Contains(out, "10 resolved") {
		t.Errorf("expected resolution stats in output, got %q", out)
	}
}

func TestFormatPerformanceHuman(t *testing.T) {
	rows := []api.AdminPerformance{
		{AdminName: "Dr. Bello", AssignedTotal: 12, Resolved: 9, Pending: 3, ResponsesGiven: 30, ResolutionRate: 75},
	}

	out := formatPerformanceHuman(rows)
	if !strings.Contains(out, "Dr. Bello") {
		t.Errorf("expected admin name, got %q", out)
	}
	if !strings.Contains(out, "75%") {
		t.Errorf("expected resolution rate, got %q", out)
	}

	if got := formatPerformanceHuman(nil); got != "No admin activity" {
		t.Errorf("expected empty message, got %q", got)
	}
}

func TestFormatChartHuman_Empty(t *testing.T) {
	out := formatChartHuman("status", nil)
	if !strings.Contains(out, "no data") {
		t.Errorf("expected no-data message, got %q", out)
	}
}
