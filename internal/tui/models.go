package tui

import (
	"orb/firescout/internal"
	"orb/firescout/pkg/config"
)

// Session is the state shared by every screen: the loaded configuration
// and the task being put together.
type Session struct {
	Config *config.Config
	Task   internal.Task
}

var (
	mainMenuOptions = []ConfigItem{
		{Name: "New scrape"},
		{Name: "New crawl"},
		{Name: "New map"},
		{Name: "New search"},
		{Name: "Settings"},
	}
	settingsMenuOptions = []ConfigItem{
		{Name: "Manual change"},
		{Name: "Load file"},
		{Name: "Save file"},
	}
	previewOptions = []ConfigItem{
		{Name: "Back to editor"},
		{Name: "Run request"},
	}
)

type Action string

const (
	ActionLoad Action = "load"
	ActionSave Action = "save"
)

type FileSelectedMsg struct {
	Path   string
	Action Action
	Error  error
}

type taskDoneMsg struct {
	output string
	err    error
}

type ConfigItem struct {
	Name     string
	Value    any
	IsStruct bool
}
