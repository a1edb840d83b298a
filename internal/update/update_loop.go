package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForSaveErrorCmd(m.saveErrors)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		if typed.Width > 8 {
			m.width = typed.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.Mode {
		case ModePalette:
			return m.handlePaletteKey(typed), nil
		case ModeEdit:
			return m.handleEditKey(typed), nil
		case ModeAdd:
			return m.handleAddKey(typed), nil
		default:
			return m.handleListKey(typed)
		}
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case SaveFailedMsg:
		m.LastError = typed.Err
		if m.saveWarnings && typed.Err != nil {
			m.Status = StatusBar{Text: "save failed: " + typed.Err.Error(), IsError: true}
		}
		return m, waitForSaveErrorCmd(m.saveErrors)
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	input := m.addInput.View()
	if m.Mode == ModePalette {
		input = views.RenderCommandPalette(true, m.commandInput.Value())
	}

	return views.RenderApp(views.AppData{
		Header:     views.Title,
		Body:       m.renderTaskPanel(),
		Input:      input,
		Aside:      m.renderHelpIfVisible(),
		StatusLine: status,
		Footer:     m.footer(),
		Width:      m.width,
	})
}

func (m Model) renderTaskPanel() string {
	tasks := m.ctrl.Tasks()
	session, editing := m.ctrl.Session()
	counts := m.ctrl.Counts()

	rows := make([]views.TaskRowData, 0, len(tasks))
	for i, t := range tasks {
		row := views.TaskRowData{
			Position:  i + 1,
			Text:      t.Text,
			Completed: t.Completed,
			Selected:  m.Mode != ModeAdd && i == m.Cursor,
		}
		if editing && m.Mode == ModeEdit && session.TaskID == t.ID {
			row.Editing = true
			row.EditView = m.editInput.View()
		}
		rows = append(rows, row)
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		Total:     counts.Total,
		Completed: counts.Completed,
		Rows:      rows,
	})
}

func (m Model) footer() string {
	switch m.Mode {
	case ModeAdd:
		return "keys: enter add | esc list | ctrl+c quit"
	case ModeEdit:
		return "keys: enter/esc save edit | ctrl+c quit"
	case ModePalette:
		return "keys: enter run | esc close"
	default:
		return fmt.Sprintf("keys: space toggle | %s edit | %s remove | %s clear done | %s add | / cmd | %s help | %s quit",
			m.Keys.Edit, m.Keys.Remove, m.Keys.ClearDone, m.Keys.Add, m.Keys.Help, m.Keys.Quit)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.Mode == ModeEdit {
		m.ctrl.ConfirmEdit()
	}
	m.Quitting = true
	return m, tea.Quit
}

func waitForSaveErrorCmd(ch <-chan error) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return SaveFailedMsg{Err: err}
	}
}
