package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardenhollis/structurize/pkg/cfg"
)

// Run launches the interactive pass viewer over pool and blocks until the
// user quits.
func Run(pool *cfg.Pool) error {
	_, err := tea.NewProgram(New(pool)).Run()
	return err
}
