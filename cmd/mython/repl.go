package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KukushkinAleksei/mython/mython"
)

var (
	accentColor  = lipgloss.Color("#8B5CF6")
	successColor = lipgloss.Color("#22C55E")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)
)

const (
	mainPrompt = "mython> "
	contPrompt = "   ...> "
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput  textinput.Model
	session    *mython.Session
	history    []historyEntry
	cmdHistory []string
	historyIdx int
	pending    []string
	width      int
	height     int
	showHelp   bool
	showVars   bool
	quitting   bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous input"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next input"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = mainPrompt

	engine := mython.NewEngine(mython.Config{})

	return replModel{
		textInput:  ti,
		session:    engine.NewSession(),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func runREPL() error {
	program := tea.NewProgram(newREPLModel())
	_, err := program.Run()
	return err
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			var cmd tea.Cmd
			m, cmd = m.handleEnter()
			return m, cmd
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleEnter() (replModel, tea.Cmd) {
	raw := m.textInput.Value()
	input := strings.TrimSpace(raw)

	if len(m.pending) == 0 {
		if input == "" {
			return m, nil
		}
		if strings.HasPrefix(input, ":") {
			var cmd tea.Cmd
			m, cmd = m.handleCommand(input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, cmd
		}
		m.cmdHistory = append(m.cmdHistory, raw)
		m.historyIdx = -1
		m.textInput.SetValue("")
		if needsContinuation(input) {
			m.pending = []string{raw}
			m.textInput.Prompt = contPrompt
			return m, nil
		}
		return m.evaluate(raw + "\n"), nil
	}

	// Inside a block: an empty line submits the buffered source.
	if input == "" {
		source := strings.Join(m.pending, "\n") + "\n"
		m.pending = nil
		m.textInput.Prompt = mainPrompt
		m.textInput.SetValue("")
		return m.evaluate(source), nil
	}
	m.pending = append(m.pending, raw)
	m.cmdHistory = append(m.cmdHistory, raw)
	m.historyIdx = -1
	m.textInput.SetValue("")
	return m, nil
}

// needsContinuation reports whether a line opens an indented block, which
// the REPL collects until a blank line.
func needsContinuation(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), ":")
}

func (m replModel) evaluate(source string) replModel {
	output, err := m.session.Eval(context.Background(), source)
	entry := historyEntry{input: strings.TrimRight(source, "\n")}
	if err != nil {
		entry.output = err.Error()
		entry.isErr = true
	} else {
		entry.output = strings.TrimRight(output, "\n")
	}
	m.history = append(m.history, entry)
	return m
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.session.Reset()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Session reset",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Mython"))
	b.WriteString(mutedStyle.Render("  :help for commands, blank line ends a block"))
	b.WriteString("\n\n")

	for _, entry := range m.history {
		for _, line := range strings.Split(entry.input, "\n") {
			b.WriteString(promptStyle.Render(mainPrompt))
			b.WriteString(line)
			b.WriteString("\n")
		}
		if entry.output != "" {
			style := resultStyle
			if entry.isErr {
				style = errorStyle
			}
			b.WriteString(style.Render(entry.output))
			b.WriteString("\n")
		}
	}

	for _, line := range m.pending {
		b.WriteString(promptStyle.Render(contPrompt))
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	if m.showVars {
		names := m.session.Globals()
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("globals:"))
		b.WriteString("\n")
		if len(names) == 0 {
			b.WriteString(mutedStyle.Render("  (none)"))
			b.WriteString("\n")
		}
		for _, name := range names {
			val, _ := m.session.Lookup(name)
			b.WriteString(fmt.Sprintf("  %s = %s\n", name, val.String()))
		}
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(":help toggle help  :vars toggle globals  :clear clear screen  :reset reset session  :quit exit"))
		b.WriteString("\n")
	}

	return b.String()
}
