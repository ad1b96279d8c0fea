package tui

import (
	"strings"

	"character-browser/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1D4ED8")).
			Padding(0, 1)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#374151"))
	evenRowStyle = lipgloss.NewStyle()
	oddRowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB")).Italic(true)
)

// columnWidths returns the widths of the name, status, species, gender and
// origin columns for a terminal of the given width.
func columnWidths(width int) [5]int {
	w := [5]int{24, 12, 16, 12, 0}
	rest := width - (w[0] + w[1] + w[2] + w[3])
	if rest < 12 {
		rest = 12
	}
	w[4] = rest
	return w
}

func renderCells(widths [5]int, style lipgloss.Style, cells ...string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = style.Width(widths[i]).MaxWidth(widths[i]).MaxHeight(1).Render(cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderHeaderRow() string {
	return renderCells(columnWidths(m.width), headerStyle,
		m.tr.T("name"),
		m.tr.T("status"),
		m.tr.T("species"),
		m.tr.T("gender"),
		m.tr.T("origin"),
	)
}

// renderRows renders one line per character.
func (m Model) renderRows(rows []domain.Character) string {
	widths := columnWidths(m.width)
	lines := make([]string, 0, len(rows))
	for i, c := range rows {
		style := evenRowStyle
		if i%2 == 1 {
			style = oddRowStyle
		}
		lines = append(lines, renderCells(widths, style,
			c.Name,
			m.tr.Field(string(c.Status)),
			m.tr.Field(c.Species),
			m.tr.Field(c.Gender),
			c.OriginName(),
		))
	}
	return strings.Join(lines, "\n")
}
