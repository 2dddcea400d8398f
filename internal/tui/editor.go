package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type editorKind int

const (
	editorKindTask editorKind = iota
	editorKindSettings
)

// EditorModel is a reflection-driven form over a struct: the task being
// built or the whole configuration.
type EditorModel struct {
	BaseModel
	Path []string
	kind editorKind
}

func NewTaskEditorModel(session *Session) EditorModel {
	model := EditorModel{
		BaseModel: BaseModel{
			Options: BuildNavigationForStruct(session.Task),
			Session: session,
		},
		Path: []string{},
		kind: editorKindTask,
	}
	model.title = "Request Editor (p — preview and run)"
	return model
}

func NewSettingsEditorModel(session *Session) EditorModel {
	model := EditorModel{
		BaseModel: BaseModel{
			Options: BuildNavigationForStruct(*session.Config),
			Session: session,
		},
		Path: []string{},
		kind: editorKindSettings,
	}
	model.title = "Settings Editor"
	return model
}

func (m EditorModel) root() any {
	if m.kind == editorKindTask {
		return &m.Session.Task
	}
	return m.Session.Config
}

func (m EditorModel) rebuildOptions() []ConfigItem {
	return BuildNavigationForStruct(GetValueByPath(m.root(), m.Path))
}

func (m EditorModel) FromFieldEditor(model FieldEditorModel) EditorModel {
	newModel := EditorModel{
		Path: model.Path,
		kind: model.kind,
		BaseModel: BaseModel{
			Session: model.Session,
		},
	}
	newModel.cursor = model.oldCursor
	newModel.Options = newModel.rebuildOptions()
	newModel.title = model.editorTitle
	newModel.message = model.message
	newModel.err = model.err
	return newModel
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.goBack(), nil
		case "p":
			if m.kind == editorKindTask {
				return NewPreviewModel(m.Session), nil
			}
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

func (m EditorModel) View() string {
	return m.renderInner(func(s *strings.Builder) *strings.Builder {
		return renderStructEdit(s, m)
	})
}

func (m EditorModel) goBack() tea.Model {
	if len(m.Path) > 0 {
		m.Path = m.Path[:len(m.Path)-1]
		m.Options = m.rebuildOptions()
		m.cursor = m.oldCursor
		m.err = nil
		m.message = ""
		return m
	}
	if m.kind == editorKindSettings {
		return NewSettingsMenuModel(m.Session)
	}
	return newMainMenu(m.Session)
}

func (m EditorModel) handleEnter() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.Options) {
		return m, nil
	}

	item := &m.Options[m.cursor]
	if item.IsStruct {
		m.Path = append(m.Path, item.Name)
		m.Options = BuildNavigationForStruct(item.Value)
		m.oldCursor = m.cursor
		m.cursor = 0
	} else {
		return NewFieldEditorModel(m, m.cursor), nil
	}
	return m, nil
}
