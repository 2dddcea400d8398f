package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type PreviewModel struct {
	BaseModel
}

func NewPreviewModel(session *Session) PreviewModel {
	model := PreviewModel{
		BaseModel: BaseModel{
			Options: previewOptions,
			Session: session,
		},
	}
	model.title = "Request Preview"
	return model
}

func (m PreviewModel) Init() tea.Cmd {
	return m.BaseModel.Init()
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			return NewTaskEditorModel(m.Session), nil
		case "up":
			m.navigateUp()
		case "down":
			m.navigateDown()
		case "enter":
			return m.handleEnter()
		}
	}
	return m, nil
}

func (m PreviewModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0: // Back to editor
		return NewTaskEditorModel(m.Session), nil
	case 1: // Run request
		results := NewResultsModel(m.Session)
		return results, results.Init()
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var options []string
	for _, option := range previewOptions {
		options = append(options, option.Name)
	}
	header := Styles.Title.Render(m.title) + "\n\n"
	return fmt.Sprintf("%s%s", header, renderPreview(m, options))
}
