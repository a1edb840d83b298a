package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	m.Mode = ModeList
}

func (m Model) executePaletteCommand() Model {
	m.Status = m.runPaletteCommand(strings.TrimSpace(m.Palette.Input))
	m.closePalette()
	return m
}

func (m *Model) runPaletteCommand(raw string) StatusBar {
	cmd, err := commands.Parse(raw)
	if err != nil {
		return StatusBar{Text: err.Error(), IsError: true}
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if !m.ctrl.Add(a.Text) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "add requires text"}
			}
			m.Cursor = len(m.ctrl.Tasks()) - 1
			return commands.Result{Message: fmt.Sprintf("added task: %s", strings.TrimSpace(a.Text))}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			id, err := m.idAtPosition(d.Position)
			if err != nil {
				return commands.Result{}, err
			}
			m.ctrl.ToggleComplete(id)
			m.Cursor = d.Position - 1
			if task, _ := m.ctrl.Task(id); task.Completed {
				return commands.Result{Message: fmt.Sprintf("task %d completed", d.Position)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("task %d reopened", d.Position)}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			id, err := m.idAtPosition(e.Position)
			if err != nil {
				return commands.Result{}, err
			}
			m.ctrl.StartEdit(id)
			m.ctrl.UpdateDraft(e.Text)
			if !m.ctrl.ConfirmEdit() {
				return commands.Result{Message: fmt.Sprintf("task %d unchanged", e.Position)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("task %d updated", e.Position)}, nil
		},
		Rm: func(r commands.RmArgs) (commands.Result, error) {
			id, err := m.idAtPosition(r.Position)
			if err != nil {
				return commands.Result{}, err
			}
			m.ctrl.Remove(id)
			m.clampCursor()
			return commands.Result{Message: fmt.Sprintf("task %d removed", r.Position)}, nil
		},
		Clear: func() (commands.Result, error) {
			removed := m.ctrl.ClearCompleted()
			m.clampCursor()
			return commands.Result{Message: fmt.Sprintf("cleared %d completed task(s)", removed)}, nil
		},
	})
	if err != nil {
		return StatusBar{Text: err.Error(), IsError: true}
	}
	return StatusBar{Text: res.Message}
}

func (m Model) idAtPosition(pos int) (string, error) {
	tasks := m.ctrl.Tasks()
	if pos < 1 || pos > len(tasks) {
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task %d", pos)}
	}
	return tasks[pos-1].ID, nil
}
