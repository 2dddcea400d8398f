package tui

import (
	"context"
	"fmt"

	"orb/firescout/internal"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ResultsModel fires the request on entry, shows a spinner while it is in
// flight and renders the output in a scrollable viewport once it lands.
type ResultsModel struct {
	BaseModel
	spinner  spinner.Model
	viewport viewport.Model
	loading  bool
}

func NewResultsModel(session *Session) ResultsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = Styles.Selected

	model := ResultsModel{
		BaseModel: BaseModel{
			Session: session,
		},
		spinner:  sp,
		viewport: viewport.New(80, 24),
		loading:  true,
	}
	model.title = "Results"
	return model
}

func (m ResultsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, runTask(m.Session))
}

func runTask(session *Session) tea.Cmd {
	return func() tea.Msg {
		output, err := internal.RunTask(
			context.Background(),
			session.Config,
			session.Task,
		)
		return taskDoneMsg{output: output, err: err}
	}
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			return newMainMenu(m.Session), nil
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 6
		return m, nil
	case taskDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.viewport.SetContent(msg.output)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ResultsModel) View() string {
	header := Styles.Title.Render(" Results ") + "\n\n"
	footer := "\n\n  ↑/↓ — scroll\n  Esc — back\n  q — quit\n"

	if m.loading {
		return header +
			fmt.Sprintf("%s waiting for the API...", m.spinner.View()) +
			footer
	}
	if m.err != nil {
		return header + Styles.Error.Render(m.err.Error()) + footer
	}
	return header + m.viewport.View() + footer
}
