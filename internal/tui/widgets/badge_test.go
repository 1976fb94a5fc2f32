// ABOUTME: Tests for the badge widgets
// ABOUTME: Verifies label formatting for each vocabulary value

package widgets

import (
	"strings"
	"testing"

	"github.com/basgenix/uni-complaint-system/internal/api"
)

func TestStatusBadge_Labels(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{api.StatusPending, "PENDING"},
		{api.StatusInProgress, "IN PROGRESS"},
		{api.StatusResolved, "RESOLVED"},
		{api.StatusClosed, "CLOSED"},
		{api.StatusRejected, "REJECTED"},
		{"weird", "WEIRD"},
	}
	for _, tt := range tests {
		got := StatusBadge(tt.status)
		if !strings.Contains(got, tt.want) {
			t.Errorf("StatusBadge(%q) = %q, want label %q", tt.status, got, tt.want)
		}
	}
}

func TestPriorityBadge_Labels(t *testing.T) {
	for _, priority := range api.ValidPriorities {
		got := PriorityBadge(priority)
		if !strings.Contains(got, strings.ToUpper(priority)) {
			t.Errorf("PriorityBadge(%q) = %q, missing label", priority, got)
		}
	}
}

func TestRoleBadge_Labels(t *testing.T) {
	if got := RoleBadge(api.RoleSuperAdmin); !strings.Contains(got, "SUPER ADMIN") {
		t.Errorf("RoleBadge(super_admin) = %q, want SUPER ADMIN", got)
	}
	if got := RoleBadge(api.RoleStudent); !strings.Contains(got, "STUDENT") {
		t.Errorf("RoleBadge(student) = %q, want STUDENT", got)
	}
}
