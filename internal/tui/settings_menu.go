package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type SettingsMenuModel struct {
	BaseModel
}

func NewSettingsMenuModel(session *Session) SettingsMenuModel {
	model := SettingsMenuModel{
		BaseModel: BaseModel{
			Options: settingsMenuOptions,
			Session: session,
		},
	}
	model.title = "Settings"
	return model
}

func (m SettingsMenuModel) Init() tea.Cmd {
	return m.BaseModel.Init()
}

func (m SettingsMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		case "esc":
			return newMainMenu(m.Session), nil
		case "down":
			m.navigateDown()
		case "up":
			m.navigateUp()
		}
	case FileSelectedMsg:
		return m.HandleFileSelected(msg)
	}
	return m, nil
}

func (m SettingsMenuModel) View() string {
	var options []string
	for _, item := range m.Options {
		options = append(options, item.Name)
	}
	return m.renderInner(func(s *strings.Builder) *strings.Builder {
		return renderMenu(s, m.cursor, options)
	})
}

func (m SettingsMenuModel) HandleFileSelected(
	msg FileSelectedMsg,
) (tea.Model, tea.Cmd) {
	if msg.Error != nil {
		m.err = msg.Error
		m.message = ""
		return m, nil
	}

	if msg.Path == "" {
		return m, nil
	}

	switch msg.Action {
	case ActionLoad:
		if err := LoadConfig(m.Session.Config, msg.Path); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.message = "Config loaded"
		}
	case ActionSave:
		if err := SaveConfig(m.Session.Config, msg.Path); err != nil {
			m.err = err
		} else {
			m.message = "Config saved"
		}
	}
	return m, nil
}

func (m SettingsMenuModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0: // Manual change
		return NewSettingsEditorModel(m.Session), nil
	case 1: // Load file
		return SelectFile(m, ActionLoad)
	case 2: // Save file
		return SelectFile(m, ActionSave)
	}
	return m, nil
}
