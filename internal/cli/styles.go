package cli

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the printed views
var (
	PriorityHigh   = lipgloss.Color("#FF6B6B")
	PriorityMedium = lipgloss.Color("#FFE66D")
	PriorityLow    = lipgloss.Color("#4ECDC4")

	Completed = lipgloss.Color("#95E1A3")
	Primary   = lipgloss.Color("#4ECDC4")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	mutedStyle   = lipgloss.NewStyle().Foreground(TextMuted)
	successStyle = lipgloss.NewStyle().Foreground(Completed)
	doneStyle    = lipgloss.NewStyle().Foreground(TextMuted).Strikethrough(true)
	ruleStyle    = lipgloss.NewStyle().Foreground(Border)

	// boxStyle frames a whole printed view.
	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)

// colorDot renders a hierarchy color swatch. Invalid colors fall back to
// the terminal default.
func colorDot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
