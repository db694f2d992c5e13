package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/cardex/internal/card"
)

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderListItem(c card.Card, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var name string
	if selected {
		name = itemSelectedStyle.Render("> " + truncateStr(c.Name, width-4))
	} else {
		name = itemNameStyle.Render("  " + truncateStr(c.Name, width-4))
	}

	meta := "  "
	if c.SetNumber != "" {
		meta += itemSetStyle.Render("#" + c.SetNumber)
	} else {
		meta += itemDimStyle.Render("—")
	}

	return name + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(cards []card.Card, cursor int, height int, width int) string {
	if len(cards) == 0 {
		return lipglossCenter("No cards found", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(cards) {
		end = len(cards)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(cards[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
