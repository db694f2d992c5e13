package tui

import (
	"strings"

	"github.com/matheuskafuri/cardex/internal/card"
)

func renderDetail(c *card.Card, width, height int) string {
	if c == nil {
		return lipglossCenter("Select a card", width, height)
	}

	var b strings.Builder
	b.WriteString(detailNameStyle.Render(wrap(c.Name, width)))
	b.WriteString("\n")

	if c.SetNumber != "" {
		b.WriteString(detailSetStyle.Render("Set #" + c.SetNumber))
		b.WriteString("\n")
	}

	if c.Info != "" {
		b.WriteString("\n")
		b.WriteString(detailBodyStyle.Render(wrap(c.Info, width)))
		b.WriteString("\n")
	}

	b.WriteString(detailLinkStyle.Render(wrap(c.ImageURL, width)))

	lines := strings.Split(b.String(), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// wrap does greedy word wrapping to the given width.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var (
		b    strings.Builder
		line int
	)
	for _, word := range strings.Fields(s) {
		wl := len([]rune(word))
		if line > 0 && line+1+wl > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += wl
	}
	return b.String()
}
