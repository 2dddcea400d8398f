package main

import (
	"context"
	"fmt"
	"os"

	"orb/firescout/internal/tui"
	"orb/firescout/pkg/config"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewMainMenuModel(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
