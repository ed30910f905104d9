// Package tui implements an interactive pass-by-pass viewer: step through
// reset, dfs, idom, pass0, dfs, pass1, phi, and validate one key press at a
// time, watching merge/continue annotations appear on each block. Built on
// bubbletea and lipgloss the way internal/cli/tui.go and internal/cli/ui.go
// build the repo-selection list viewer.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/structurize"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
	colorWhite  = lipgloss.Color("255")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleDone    = lipgloss.NewStyle().Foreground(colorGreen)
	stylePending = lipgloss.NewStyle().Foreground(colorDim)
	styleCurrent = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleHeader  = lipgloss.NewStyle().Foreground(colorYellow)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
)

type stepRecord struct {
	name string
	err  error
}

// Model is the bubbletea model driving a structurize.Stepper.
type Model struct {
	pool    *cfg.Pool
	stepper *structurize.Stepper
	history []stepRecord
	quit    bool
}

// New creates a Model over pool. pool must not yet have been structurized.
func New(pool *cfg.Pool) Model {
	return Model{pool: pool, stepper: structurize.NewStepper(pool, nil)}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit
	case "n", "enter", " ":
		if !m.stepper.Done() {
			name, err, _ := m.stepper.Next()
			m.history = append(m.history, stepRecord{name, err})
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("structurize pass viewer"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("n/enter: step  q: quit"))
	b.WriteString("\n\n")

	for i, name := range m.stepper.StepNames() {
		switch {
		case i < len(m.history) && m.history[i].err != nil:
			b.WriteString(styleError.Render(fmt.Sprintf("✗ %s: %v", name, m.history[i].err)))
		case i < len(m.history):
			b.WriteString(styleDone.Render("✓ " + name))
		case i == len(m.history):
			b.WriteString(styleCurrent.Render("▸ " + name))
		default:
			b.WriteString(stylePending.Render("  " + name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleHeader.Render("blocks"))
	b.WriteString("\n")
	for _, n := range m.pool.Nodes() {
		b.WriteString(formatBlock(n))
		b.WriteString("\n")
	}

	if m.stepper.Done() {
		b.WriteString("\n")
		b.WriteString(styleDone.Render("done"))
	}
	return b.String()
}

func formatBlock(n *cfg.Node) string {
	label := styleValue.Render(n.Name)
	if n.Merge.String() == "none" {
		return fmt.Sprintf("  %s", label)
	}
	target := ""
	switch {
	case n.SelectionMergeBlock != nil:
		target = n.SelectionMergeBlock.Name
	case n.LoopMergeBlock != nil:
		target = n.LoopMergeBlock.Name
	}
	return fmt.Sprintf("  %s %s -> %s", label, styleDim.Render(n.Merge.String()), styleValue.Render(target))
}
