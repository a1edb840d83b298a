package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tasklist/internal/todo"
)

type Mode string

const (
	ModeList    Mode = "list"
	ModeAdd     Mode = "add"
	ModeEdit    Mode = "edit"
	ModePalette Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Toggle    string
	Edit      string
	Remove    string
	ClearDone string
	Add       string
	Palette   string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Options struct {
	// SaveErrors carries failed background saves, usually persist.Writer.Errors().
	SaveErrors   <-chan error
	SaveWarnings bool
	Width        int
}

type Model struct {
	Mode        Mode
	Cursor      int
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        KeyMap
	Quitting    bool
	LastError   error

	ctrl         *todo.Controller
	saveErrors   <-chan error
	saveWarnings bool
	width        int

	addInput     textinput.Model
	editInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type SaveFailedMsg struct {
	Err error
}

func NewModel(ctrl *todo.Controller, opts Options) Model {
	m := Model{
		Mode: ModeList,
		Keys: KeyMap{
			Toggle:    " ",
			Edit:      "e",
			Remove:    "d",
			ClearDone: "C",
			Add:       "a",
			Palette:   "/",
			Help:      "?",
			Quit:      "q",
		},
		ctrl:         ctrl,
		saveErrors:   opts.SaveErrors,
		saveWarnings: opts.SaveWarnings,
		width:        opts.Width,
	}
	m.initBubbleComponents()
	if len(ctrl.Tasks()) == 0 {
		m.enterAddMode()
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "+ "
	m.addInput.Placeholder = "Write a task"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.editInput = textinput.New()
	m.editInput.Prompt = ""
	m.editInput.CharLimit = 256
	m.editInput.Width = 44

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

// Controller exposes the task list the model renders.
func (m Model) Controller() *todo.Controller {
	return m.ctrl
}
