// ABOUTME: Interactive complaint inbox built on bubbletea
// ABOUTME: Browses complaint pages in a table and opens a detail view

package inbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/tui/styles"
	"github.com/basgenix/uni-complaint-system/internal/tui/widgets"
)

// screen represents the current inbox screen
type screen int

const (
	screenList screen = iota
	screenDetail
)

// FetchPage loads one page of complaints. The inbox is written against
// this function type so tests can drive it without a server; the
// student and admin commands plug in the matching client call.
type FetchPage func(ctx context.Context, page int) (*api.ComplaintPage, error)

// FetchDetail loads a single complaint with its responses
type FetchDetail func(ctx context.Context, id int) (*api.Complaint, error)

// pageLoadedMsg is sent when a complaint page arrives
type pageLoadedMsg struct {
	page *api.ComplaintPage
	err  error
}

// detailLoadedMsg is sent when a complaint detail arrives
type detailLoadedMsg struct {
	complaint *api.Complaint
	err       error
}

// Model is the inbox bubbletea model
type Model struct {
	fetchPage   FetchPage
	fetchDetail FetchDetail

	screen     screen
	table      table.Model
	spinner    spinner.Model
	loading    bool
	err        error
	page       int
	pagination api.Pagination
	complaints []api.Complaint
	detail     *api.Complaint
	width      int
	height     int
}

// New creates an inbox over the given data sources
func New(fetchPage FetchPage, fetchDetail FetchDetail) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	tbl := table.New(
		table.WithColumns(listColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(styles.Accent)
	ts.Selected = ts.Selected.Foreground(styles.Text).Background(styles.Primary)
	tbl.SetStyles(ts)

	return &Model{
		fetchPage:   fetchPage,
		fetchDetail: fetchDetail,
		spinner:     sp,
		table:       tbl,
		page:        1,
		loading:     true,
	}
}

func listColumns(width int) []table.Column {
	title := width - 16 - 14 - 12 - 12
	if title < 20 {
		title = 20
	}
	return []table.Column{
		{Title: "Ticket", Width: 16},
		{Title: "Title", Width: title},
		{Title: "Status", Width: 14},
		{Title: "Priority", Width: 12},
		{Title: "Updated", Width: 12},
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPage(m.page))
}

func (m *Model) loadPage(page int) tea.Cmd {
	return func() tea.Msg {
		result, err := m.fetchPage(context.Background(), page)
		return pageLoadedMsg{page: result, err: err}
	}
}

func (m *Model) loadDetail(id int) tea.Cmd {
	return func() tea.Msg {
		complaint, err := m.fetchDetail(context.Background(), id)
		return detailLoadedMsg{complaint: complaint, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(listColumns(msg.Width - 6))
		if msg.Height > 10 {
			m.table.SetHeight(msg.Height - 8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.complaints = msg.page.Complaints
		m.pagination = msg.page.Pagination
		m.page = m.pagination.Page
		m.table.SetRows(m.rows())
		return m, nil

	case detailLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.detail = msg.complaint
		m.screen = screenDetail
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.screen == screenDetail {
			m.screen = screenList
			m.detail = nil
			return m, nil
		}
		return m, tea.Quit

	case "esc":
		if m.screen == screenDetail {
			m.screen = screenList
			m.detail = nil
		}
		return m, nil

	case "enter":
		if m.screen != screenList || m.loading {
			return m, nil
		}
		idx := m.table.Cursor()
		if idx < 0 || idx >= len(m.complaints) {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadDetail(m.complaints[idx].ID))

	case "r":
		if m.screen != screenList || m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadPage(m.page))

	case "n", "right":
		if m.screen == screenList && !m.loading && m.pagination.HasNext {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadPage(m.page+1))
		}
		return m, nil

	case "p", "left":
		if m.screen == screenList && !m.loading && m.pagination.HasPrev {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadPage(m.page-1))
		}
		return m, nil
	}

	if m.screen == screenList {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.complaints))
	for _, c := range m.complaints {
		rows = append(rows, table.Row{
			c.TicketNumber,
			c.Title,
			strings.ReplaceAll(c.Status, "_", " "),
			c.Priority,
			shortDate(c.UpdatedAt),
		})
	}
	return rows
}

func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Complaint Inbox"))
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(styles.ErrorText.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r refresh • q quit"))
		return sb.String()
	}

	if m.loading {
		sb.WriteString(fmt.Sprintf("%s Loading...\n", m.spinner.View()))
		return sb.String()
	}

	if m.screen == screenDetail && m.detail != nil {
		sb.WriteString(m.detailView())
		sb.WriteString(styles.Help.Render("esc back • q back"))
		return sb.String()
	}

	if len(m.complaints) == 0 {
		sb.WriteString(styles.Subtitle.Render("No complaints found"))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Page %d of %d (%d total)",
			m.pagination.Page, m.pagination.TotalPages, m.pagination.TotalItems)))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("enter open • n/p page • r refresh • q quit"))
	return sb.String()
}

func (m *Model) detailView() string {
	c := m.detail
	var sb strings.Builder

	sb.WriteString(styles.ValueStyle.Render(c.Title))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(c.TicketNumber))
	sb.WriteString("\n")
	sb.WriteString(widgets.StatusBadge(c.Status))
	sb.WriteString(" ")
	sb.WriteString(widgets.PriorityBadge(c.Priority))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Category: %s\n", c.Category))
	if c.AssignedAdmin != nil {
		sb.WriteString(fmt.Sprintf("Assigned: %s\n", c.AssignedAdmin.FullName))
	}
	sb.WriteString("\n")
	sb.WriteString(c.Description)
	sb.WriteString("\n")

	if len(c.Responses) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Title.Render(fmt.Sprintf("Responses (%d)", len(c.Responses))))
		sb.WriteString("\n")
		for _, r := range c.Responses {
			who := "Student"
			if r.Author != nil {
				who = r.Author.FullName
			}
			sb.WriteString(fmt.Sprintf("%s %s\n%s\n\n",
				styles.KeyStyle.Render(who),
				styles.Subtitle.Render(shortDate(r.CreatedAt)),
				r.Message))
		}
	}
	return sb.String()
}
