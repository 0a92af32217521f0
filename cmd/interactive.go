package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/inference-sim/simbridge/kernel"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// historyLines is how many recorded lines the view keeps on screen.
const historyLines = 20

// interactiveCmd steps a module from the keyboard
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Step a module instance interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd.Flags())
		if err != nil {
			return err
		}
		s, err := newSession(kernel.Default(), cfg, nil, nil)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(newInteractiveModel(s)).Run()
		return err
	},
}

type interactiveModel struct {
	session *session
	err     error
}

func newInteractiveModel(s *session) *interactiveModel {
	return &interactiveModel{session: s}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", " ", "enter":
		m.err = m.session.step()
	case "n":
		for i := 0; i < 10 && m.err == nil; i++ {
			m.err = m.session.step()
		}
	case "r":
		m.err = m.session.reset()
	case "d":
		m.err = m.session.recreate()
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	s := m.session
	ctx := s.bridge.Context()

	var b strings.Builder
	b.WriteString(titleStyle.Render("simbridge: " + s.cfg.Module))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("t=%s  generation=%d  instance=#%d  steps=%d",
		ctx.Now(), ctx.Generation(), s.inst.ID(), s.steps)))
	b.WriteString("\n\n")

	lines := s.lines
	if len(lines) > historyLines {
		lines = lines[len(lines)-historyLines:]
	}
	for _, l := range lines {
		b.WriteString(lineStyle.Render(l))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s/space step • n step ×10 • r reset • d destroy+create • q quit"))
	return b.String()
}

func init() {
	addSessionFlags(interactiveCmd)
}
