// ABOUTME: Status and priority badge widgets for complaint rendering
// ABOUTME: Maps the complaint vocabularies to colored inline badges

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/basgenix/uni-complaint-system/internal/api"
)

// Badge colors
var (
	badgeGreenBg   = lipgloss.Color("#10B981")
	badgeAmberBg   = lipgloss.Color("#F59E0B")
	badgeRedBg     = lipgloss.Color("#EF4444")
	badgeBlueBg    = lipgloss.Color("#3B82F6")
	badgeNeutralBg = lipgloss.Color("#6B7280")
	badgeLightFg   = lipgloss.Color("#FFFFFF")
	badgeDarkFg    = lipgloss.Color("#000000")
)

// Badge renders text on a colored background
func Badge(text string, bg, fg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)
	return style.Render(text)
}

// StatusBadge renders a complaint status as a colored badge
func StatusBadge(status string) string {
	label := strings.ToUpper(strings.ReplaceAll(status, "_", " "))
	switch status {
	case api.StatusPending:
		return Badge(label, badgeAmberBg, badgeDarkFg)
	case api.StatusInProgress:
		return Badge(label, badgeBlueBg, badgeLightFg)
	case api.StatusResolved:
		return Badge(label, badgeGreenBg, badgeLightFg)
	case api.StatusClosed:
		return Badge(label, badgeNeutralBg, badgeLightFg)
	case api.StatusRejected:
		return Badge(label, badgeRedBg, badgeLightFg)
	default:
		return Badge(label, badgeNeutralBg, badgeLightFg)
	}
}

// PriorityBadge renders a complaint priority as a colored badge
func PriorityBadge(priority string) string {
	label := strings.ToUpper(priority)
	switch priority {
	case api.PriorityLow:
		return Badge(label, badgeNeutralBg, badgeLightFg)
	case api.PriorityMedium:
		return Badge(label, badgeBlueBg, badgeLightFg)
	case api.PriorityHigh:
		return Badge(label, badgeAmberBg, badgeDarkFg)
	case api.PriorityUrgent:
		return Badge(label, badgeRedBg, badgeLightFg)
	default:
		return Badge(label, badgeNeutralBg, badgeLightFg)
	}
}

// RoleBadge renders a user role as a colored badge
func RoleBadge(role string) string {
	label := strings.ToUpper(strings.ReplaceAll(role, "_", " "))
	switch role {
	case api.RoleSuperAdmin:
		return Badge(label, badgeRedBg, badgeLightFg)
	case api.RoleAdmin:
		return Badge(label, badgeBlueBg, badgeLightFg)
	default:
		return Badge(label, badgeGreenBg, badgeLightFg)
	}
}
