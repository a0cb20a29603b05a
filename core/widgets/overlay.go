package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(PaneSelected).
	Padding(1, 2)

// RenderPopup centres popup in a framed card over base. Rows of base outside
// the card are kept as they are.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := toLines(base, height)
	for i := range canvas {
		canvas[i] = padRight(canvas[i], width)
	}
	card := toLines(popupStyle.Render(popup), 0)
	cardWidth := 0
	for _, line := range card {
		cardWidth = max(cardWidth, ansi.StringWidth(line))
	}
	if cardWidth == 0 {
		return strings.Join(canvas, "\n")
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(card))/2)
	for i, line := range card {
		row := y + i
		if row >= len(canvas) {
			break
		}
		canvas[row] = splice(canvas[row], padRight(line, cardWidth), x, width)
	}
	return strings.Join(canvas, "\n")
}

// splice replaces the columns of row starting at x with overlay.
func splice(row, overlay string, x, width int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(overlay)
	right := strings.TrimPrefix(row, ansi.Truncate(row, end, ""))
	if gap := width - end - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + overlay + right
}

func toLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height <= 0 {
		return lines
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
