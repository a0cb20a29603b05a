package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	PaneBorder   lipgloss.Color = "#6c7086"
	PaneSelected lipgloss.Color = "#89b4fa"
	PaneFocused  lipgloss.Color = "#a6e3a1"
	PaneText     lipgloss.Color = "#cdd6f4"
	PaneMuted    lipgloss.Color = "#7f849c"
)

// Pane draws a rounded frame with the title set into the top border. Hint,
// when set, is pinned to the last inner row.
type Pane struct {
	Title    string
	Height   int
	Content  string
	Hint     string
	Selected bool
	Focused  bool
}

func (p Pane) Render(width, height int) string {
	if width <= 0 {
		return ""
	}
	width = max(width, 4)
	h := max(p.Height, 3)
	if height > 0 && h > height {
		h = max(height, 3)
	}

	border := PaneBorder
	marker := "  "
	switch {
	case p.Focused:
		border, marker = PaneFocused, "● "
	case p.Selected:
		border, marker = PaneSelected, "▶ "
	}
	edge := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(PaneText).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(PaneMuted)

	inner := width - 2
	contentWidth := max(1, inner-2)

	title := " " + strings.TrimSpace(marker+p.Title) + " "
	if ansi.StringWidth(title) > inner {
		title = ansi.Truncate(title, inner, "")
	}
	dashes := inner - ansi.StringWidth(title)
	lead := min(1, dashes)
	top := edge.Render("╭"+strings.Repeat("─", lead)) +
		titleStyle.Render(title) +
		edge.Render(strings.Repeat("─", max(0, dashes-lead))+"╮")

	body := h - 2
	lines := splitLines(p.Content)
	if p.Hint != "" && body > 1 {
		if len(lines) > body-1 {
			lines = lines[:body-1]
		}
		for len(lines) < body-1 {
			lines = append(lines, "")
		}
		lines = append(lines, hintStyle.Render(ansi.Truncate(p.Hint, contentWidth, "")))
	}

	side := edge.Render("│")
	rows := make([]string, 0, h)
	rows = append(rows, top)
	for i := 0; i < body; i++ {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], contentWidth, "")
		}
		rows = append(rows, side+" "+padRight(line, contentWidth)+" "+side)
	}
	rows = append(rows, edge.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(rows, "\n")
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
