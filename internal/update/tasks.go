package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		return m.quit()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Palette:
		m.Mode = ModePalette
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Add, "i":
		m.enterAddMode()
		return m, nil
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.ctrl.Tasks())-1 {
			m.Cursor++
		}
	case m.Keys.Toggle, "enter":
		m.toggleAtCursor()
	case m.Keys.Edit:
		m.startEditAtCursor()
	case m.Keys.Remove, "x", "delete":
		m.removeAtCursor()
	case m.Keys.ClearDone:
		m.clearCompleted()
	default:
		if msg.Type == tea.KeyRunes {
			m.enterAddMode()
			return m.handleAddKey(msg), nil
		}
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.addInput.Blur()
		return m
	case "enter":
		if m.ctrl.Add(m.addInput.Value()) {
			m.Cursor = len(m.ctrl.Tasks()) - 1
			m.Status = StatusBar{Text: "task added"}
		}
		m.addInput.SetValue("")
		return m
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter", "esc":
		m.ctrl.UpdateDraft(m.editInput.Value())
		if m.ctrl.ConfirmEdit() {
			m.Status = StatusBar{Text: "task updated"}
		} else {
			m.Status = StatusBar{Text: "edit closed"}
		}
		m.editInput.Blur()
		m.Mode = ModeList
		return m
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = cmd
	m.ctrl.UpdateDraft(m.editInput.Value())
	return m
}

func (m *Model) enterAddMode() {
	m.Mode = ModeAdd
	m.addInput.Focus()
}

func (m Model) selectedID() (string, bool) {
	tasks := m.ctrl.Tasks()
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return "", false
	}
	return tasks[m.Cursor].ID, true
}

func (m *Model) toggleAtCursor() {
	id, ok := m.selectedID()
	if !ok || !m.ctrl.ToggleComplete(id) {
		return
	}
	if task, _ := m.ctrl.Task(id); task.Completed {
		m.Status = StatusBar{Text: "task completed"}
	} else {
		m.Status = StatusBar{Text: "task reopened"}
	}
}

func (m *Model) startEditAtCursor() {
	id, ok := m.selectedID()
	if !ok || !m.ctrl.StartEdit(id) {
		return
	}
	session, _ := m.ctrl.Session()
	m.editInput.SetValue(session.Draft)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.Mode = ModeEdit
}

func (m *Model) removeAtCursor() {
	id, ok := m.selectedID()
	if !ok || !m.ctrl.Remove(id) {
		return
	}
	m.clampCursor()
	m.Status = StatusBar{Text: "task removed"}
}

func (m *Model) clearCompleted() {
	removed := m.ctrl.ClearCompleted()
	if removed == 0 {
		m.Status = StatusBar{Text: "nothing to clear"}
		return
	}
	m.clampCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed task(s)", removed)}
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Tasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
