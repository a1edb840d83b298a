package views

import (
	"fmt"
	"strings"
)

const (
	Title       = "Today's tasks"
	EmptyText   = "No tasks yet. Add one below."
	ClearAction = "Clear done"
)

type TaskRowData struct {
	Position  int
	Text      string
	Completed bool
	Selected  bool
	Editing   bool
	EditView  string
}

type TaskPanelData struct {
	Total     int
	Completed int
	Rows      []TaskRowData
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

// RenderMetaBar renders "Total: N | Done: M" with the clear action, dimmed
// when nothing is completed.
func RenderMetaBar(total, completed int) string {
	counts := metaStyle.Render(fmt.Sprintf("Total: %d | Done: %d", total, completed))
	action := clearOffStyle.Render(ClearAction)
	if completed > 0 {
		action = clearStyle.Render(ClearAction + " [C]")
	}
	return counts + "   " + action
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(RenderMetaBar(data.Total, data.Completed))
	b.WriteString("\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(emptyStyle.Render(EmptyText))
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(row))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = cursorStyle.Render(">")
	}
	if row.Editing {
		return fmt.Sprintf("%s %2d. %s", cursor, row.Position, editFieldStyle.Render(row.EditView))
	}
	box := "[ ]"
	text := row.Text
	if row.Completed {
		box = "[x]"
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%s %2d. %s %s", cursor, row.Position, box, text)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s mode):\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
