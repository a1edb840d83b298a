package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklist/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Bindings: []string{views.RenderMarkdown(m.helpMarkdown())},
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("| key | action |\n|---|---|\n")
	for _, kb := range m.modeBindings() {
		b.WriteString(fmt.Sprintf("| `%s` | %s |\n", kb.Key, kb.Action))
	}
	b.WriteString("\nCommands: `/add <text>`, `/done <n>`, `/edit <n> <text>`, `/rm <n>`, `/clear`\n")
	return b.String()
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeAdd:
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "esc", Action: "back to list"},
		}
	case ModeEdit:
		return []KeyBinding{
			{Key: "enter/esc", Action: "save edit (blank cancels)"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space/enter", Action: "toggle done"},
			{Key: m.Keys.Edit, Action: "edit task"},
			{Key: m.Keys.Remove + "/x", Action: "remove task"},
			{Key: m.Keys.ClearDone, Action: "clear done"},
			{Key: m.Keys.Add + "/i", Action: "write a task"},
			{Key: m.Keys.Palette, Action: "command palette"},
			{Key: m.Keys.Help, Action: "toggle help"},
			{Key: m.Keys.Quit, Action: "quit"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	modes := m.modeBindings()
	out := make([]key.Binding, 0, len(modes))
	for _, kb := range modes {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
