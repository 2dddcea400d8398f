package tui

import (
	"strings"

	"orb/firescout/internal"
	"orb/firescout/pkg/config"

	tea "github.com/charmbracelet/bubbletea"
)

type MainMenuModel struct {
	BaseModel
}

func NewMainMenuModel(cfg *config.Config) MainMenuModel {
	return newMainMenu(&Session{Config: cfg})
}

func newMainMenu(session *Session) MainMenuModel {
	return MainMenuModel{
		BaseModel: BaseModel{
			Options: mainMenuOptions,
			title:   "firescout",
			Session: session,
		},
	}
}

func (m MainMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		case "down":
			m.navigateDown()
		case "up":
			m.navigateUp()
		}
	}
	return m, nil
}

func (m MainMenuModel) View() string {
	var options []string
	for _, item := range m.Options {
		options = append(options, item.Name)
	}
	return m.renderInner(func(s *strings.Builder) *strings.Builder {
		return renderMenu(s, m.cursor, options)
	})
}

func (m MainMenuModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0:
		m.Session.Task.Operation = internal.OpScrape
	case 1:
		m.Session.Task.Operation = internal.OpCrawl
	case 2:
		m.Session.Task.Operation = internal.OpMap
	case 3:
		m.Session.Task.Operation = internal.OpSearch
	case 4:
		return NewSettingsMenuModel(m.Session), nil
	}
	return NewTaskEditorModel(m.Session), nil
}
