package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const DefaultWidth = 60

type AppData struct {
	Header     string
	Body       string
	Input      string
	Aside      string
	StatusLine string
	Footer     string
	Width      int
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	clearStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	clearOffStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	editFieldStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("7")).Padding(0, 1)
)

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 {
		width = DefaultWidth
	}
	body := panelStyle.Width(width).Render(data.Body)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") || strings.Contains(strings.ToLower(data.StatusLine), "failed") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		body,
	}
	if data.Input != "" {
		lines = append(lines, data.Input)
	}
	if data.StatusLine != "" {
		lines = append(lines, status)
	}
	if data.Aside != "" {
		lines = append(lines, panelStyle.Width(width).Render(data.Aside))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
