package main

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autotyper/hotkey"
)

// TUI message types
type StatusMsg struct{ Text string }
type TypingMsg struct{ Active bool }
type TypedMsg struct{ Text string }
type LogMsg struct{ Text string }

const historySize = 8

type tuiModel struct {
	status        string
	typing        bool
	history       []string // most recent typed lines, newest last
	lastLog       string
	typedCount    int
	width, height int
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	typingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	standbyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	typedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	logStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func NewTUIProgram() *tea.Program {
	return tea.NewProgram(tuiModel{}, tea.WithAltScreen())
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case StatusMsg:
		m.status = msg.Text

	case TypingMsg:
		m.typing = msg.Active

	case TypedMsg:
		m.typedCount++
		m.history = append(m.history, msg.Text)
		if len(m.history) > historySize {
			m.history = m.history[len(m.history)-historySize:]
		}

	case LogMsg:
		m.lastLog = msg.Text
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var lines []string
	lines = append(lines, titleStyle.Render("autotyper"))
	lines = append(lines, "")

	if m.typing {
		lines = append(lines, typingStyle.Render("● TYPING"))
	} else {
		lines = append(lines, standbyStyle.Render("○ STANDBY"))
	}

	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("lines typed: %d", m.typedCount)))

	if len(m.history) > 0 {
		lines = append(lines, "")
		for _, h := range m.history {
			lines = append(lines, typedStyle.Render("› "+truncate(h, m.width-4)))
		}
	}

	if m.lastLog != "" {
		lines = append(lines, "", logStyle.Render(m.lastLog))
	}

	lines = append(lines, "", dimStyle.Render(hotkey.Help()))
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	r := []rune(strings.ReplaceAll(s, "\n", "⏎"))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-3]) + "..."
}

// tuiSink forwards app events into the Bubble Tea program.
type tuiSink struct{}

func (tuiSink) send(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (s tuiSink) Status(text string) { s.send(StatusMsg{Text: text}) }
func (s tuiSink) Typing(active bool) { s.send(TypingMsg{Active: active}) }
func (s tuiSink) Typed(line string)  { s.send(TypedMsg{Text: line}) }

func (s tuiSink) Log(format string, args ...any) {
	s.send(LogMsg{Text: fmt.Sprintf(format, args...)})
}
