// ABOUTME: Tests for the complaint inbox model
// ABOUTME: Drives the update loop with synthetic messages and key presses

package inbox

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basgenix/uni-complaint-system/internal/api"
)

func testPage(page int) *api.ComplaintPage {
	return &api.ComplaintPage{
		Complaints: []api.Complaint{
			{
				ID:           page * 10,
				TicketNumber: fmt.Sprintf("TKT-2026-%06d", page*10),
				Title:        fmt.Sprintf("Complaint on page %d", page),
				Status:       api.StatusPending,
				Priority:     api.PriorityMedium,
				UpdatedAt:    "2026-08-28T10:00:00",
			},
		},
		Pagination: api.Pagination{
			Page:       page,
			TotalPages: 3,
			TotalItems: 3,
			HasNext:    page < 3,
			HasPrev:    page > 1,
		},
	}
}

func newTestModel() *Model {
	fetchPage := func(ctx context.Context, page int) (*api.ComplaintPage, error) {
		return testPage(page), nil
	}
	fetchDetail := func(ctx context.Context, id int) (*api.Complaint, error) {
		return &api.Complaint{
			ID:           id,
			TicketNumber: "TKT-2026-000010",
			Title:        "Missing transcript",
			Description:  "My transcript has not been issued.",
			Category:     "transcript",
			Status:       api.StatusInProgress,
			Priority:     api.PriorityHigh,
			Responses: []api.ComplaintResponse{
				{Message: "We are on it", CreatedAt: "2026-08-28T11:00:00",
					Author: &api.AdminRef{FullName: "Dr. Bello"}},
			},
		}, nil
	}
	return New(fetchPage, fetchDetail)
}

// drain runs a command and feeds resulting messages back into the model
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				drain(t, m, c)
			}
			return
		}
		// Spinner ticks reschedule themselves while loading; skip them
		// so the drain terminates.
		if _, ok := msg.(spinner.TickMsg); ok {
			return
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		if next != m {
			t.Fatal("model identity must be stable across updates")
		}
	}
}

func TestInbox_LoadsFirstPage(t *testing.T) {
	m := newTestModel()
	drain(t, m, m.loadPage(1))

	if m.loading {
		t.Error("expected loading cleared after page arrives")
	}
	if len(m.complaints) != 1 {
		t.Fatalf("expected 1 complaint, got %d", len(m.complaints))
	}

	view := m.View()
	if !strings.Contains(view, "Complaint on page 1") {
		t.Errorf("expected complaint title in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Page 1 of 3") {
		t.Errorf("expected pagination line in view, got:\n%s", view)
	}
}

func TestInbox_Paging(t *testing.T) {
	m := newTestModel()
	drain(t, m, m.loadPage(1))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	drain(t, m, cmd)
	if m.page != 2 {
		t.Errorf("expected page 2 after next, got %d", m.page)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	drain(t, m, cmd)
	if m.page != 1 {
		t.Errorf("expected page 1 after prev, got %d", m.page)
	}

	// No previous page from page 1
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if cmd != nil {
		t.Error("expected no command when already on the first page")
	}
}

func TestInbox_OpenAndCloseDetail(t *testing.T) {
	m := newTestModel()
	drain(t, m, m.loadPage(1))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, m, cmd)

	if m.screen != screenDetail {
		t.Fatal("expected detail screen after enter")
	}
	view := m.View()
	if !strings.Contains(view, "Missing transcript") {
		t.Errorf("expected complaint detail in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Dr. Bello") {
		t.Errorf("expected response author in view, got:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenList {
		t.Error("expected list screen after esc")
	}
}

func TestInbox_FetchErrorIsShown(t *testing.T) {
	m := New(
		func(ctx context.Context, page int) (*api.ComplaintPage, error) {
			return nil, fmt.Errorf("connection refused")
		},
		func(ctx context.Context, id int) (*api.Complaint, error) {
			return nil, nil
		},
	)
	drain(t, m, m.loadPage(1))

	if !strings.Contains(m.View(), "connection refused") {
		t.Errorf("expected error in view, got:\n%s", m.View())
	}
}

func TestInbox_QuitFromList(t *testing.T) {
	m := newTestModel()
	drain(t, m, m.loadPage(1))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
