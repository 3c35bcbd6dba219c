package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Evaluator turns one query line into rendered output. The repl stays
// presentation-only; evaluation semantics live with the caller.
type Evaluator func(line string) string

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

const historyLimit = 64

type replModel struct {
	input   textinput.Model
	eval    Evaluator
	history []string
	done    bool
}

// NewReplModel returns a Bubble Tea model for the interactive query prompt.
// Every entered line is a batch query (parse, cast, nocast, overlap).
func NewReplModel(eval Evaluator) tea.Model {
	ti := textinput.New()
	ti.Placeholder = "cast int => float"
	ti.Prompt = promptStyle.Render("tyq> ")
	ti.CharLimit = 512
	ti.Focus()
	return &replModel{input: ti, eval: eval}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if line == "exit" || line == "quit" {
				m.done = true
				return m, tea.Quit
			}
			m.push(echoStyle.Render("tyq> " + line))
			m.push(m.eval(line))
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) push(entry string) {
	m.history = append(m.history, entry)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

func (m *replModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("tycho type console"))
	b.WriteString("\n")
	for _, entry := range m.history {
		b.WriteString(entry)
		if !strings.HasSuffix(entry, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter a query; exit or ctrl+c to leave"))
	b.WriteString("\n")
	return b.String()
}
