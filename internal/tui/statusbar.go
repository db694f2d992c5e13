package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/cardex/internal/catalog"
)

func freshnessBadge(f catalog.Freshness) string {
	switch f {
	case catalog.FreshnessFresh:
		return freshBadgeStyle.Render("fresh")
	case catalog.FreshnessStale:
		return staleBadgeStyle.Render("stale")
	case catalog.FreshnessUnavailable:
		return staleBadgeStyle.Render("unavailable")
	default:
		return itemDimStyle.Render("cached")
	}
}

func renderStatusBar(count int, freshness catalog.Freshness, updatedAt time.Time, width int, searching, refreshing bool) string {
	left := fmt.Sprintf(" %d cards · %s · updated %s", count, freshnessBadge(freshness), relativeTime(updatedAt))

	right := " / search  v variant  r refresh  q quit "
	if searching {
		right = " esc cancel  enter apply "
	}
	if refreshing {
		left += " (refreshing...)"
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
