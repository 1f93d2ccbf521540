package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lgbarn/chessrules-go/internal/game"
)

// Run plays s interactively until the user quits. supplier may be nil.
func Run(s *game.Session, supplier game.MoveSupplier) error {
	p := tea.NewProgram(NewModel(s, supplier), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
