package cli

import (
	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/charmbracelet/lipgloss"
)

var (
	badgeOK      = lipgloss.NewStyle().Background(lipgloss.Color("#10B981")).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1).Bold(true)
	badgeNeutral = lipgloss.NewStyle().Background(lipgloss.Color("#6B7280")).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1).Bold(true)
	badgeWarn    = lipgloss.NewStyle().Background(lipgloss.Color("#F59E0B")).Foreground(lipgloss.Color("#000000")).Padding(0, 1).Bold(true)

	labelStyle = lipgloss.NewStyle().Bold(true)
)

// sessionBadge renders the session state as a colored badge.
func sessionBadge(authenticated bool) string {
	if authenticated {
		return badgeOK.Render("AUTHENTICATED")
	}
	return badgeNeutral.Render("ANONYMOUS")
}

// batchBadge renders a batch status. Unknown statuses are shown as-is; the
// backend treats the vocabulary as open.
func batchBadge(status string) string {
	switch status {
	case api.StatusActive:
		return badgeOK.Render("ACTIVE")
	case api.StatusClosed:
		return badgeNeutral.Render("CLOSED")
	default:
		return badgeWarn.Render(status)
	}
}
