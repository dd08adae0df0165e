package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olenko/satchel/internal/app"
)

// Mode is the part of the assistant the session is talking to.
type Mode int

const (
	ModeMain Mode = iota
	ModeContacts
	ModeNotes
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeContacts:
		return "Contacts"
	case ModeNotes:
		return "Notes"
	default:
		return "Main menu"
	}
}

// prompt is a pending follow-up question. While one is set, the next
// submitted line goes to submit instead of the command dispatcher.
type prompt struct {
	text   string
	submit func(value string) tea.Cmd
}

// Model is the interactive session: a transcript, a command line, and
// the mode the next command is read in.
type Model struct {
	app  *app.App
	mode Mode

	input    textinput.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	lines   []string
	dirty   bool
	pending *prompt
	busy    bool

	saveFailed bool
	exitMsg    string
}

// New creates the session model.
func New(a *app.App) *Model {
	ti := textinput.New()
	ti.PromptStyle = promptStyle
	ti.Focus()

	m := &Model{
		app:   a,
		mode:  ModeMain,
		input: ti,
	}

	m.println(titleStyle.Render("Welcome to Satchel, your personal contacts and notes assistant"))
	if a.User != "" {
		m.println(fmt.Sprintf("Hello, %s, glad to see you again!", titleCase(a.User)))
	}
	if a.Assist == nil {
		m.println(warnStyle.Render("AI functions disabled (no API key)."))
	}
	m.input.Prompt = m.promptFor()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// println appends one entry to the transcript. Entries may span lines.
func (m *Model) println(s string) {
	m.lines = append(m.lines, s)
	m.dirty = true
}

func (m *Model) printOK(msg string) {
	m.println(okStyle.Render("✓ " + msg))
}

func (m *Model) printError(err error) {
	m.println(errStyle.Render(err.Error()))
}

// echo records the submitted input the way a terminal would.
func (m *Model) echo(promptText, value string) {
	m.println(dimStyle.Render(promptText) + value)
}

func (m *Model) promptFor() string {
	if m.pending != nil {
		return m.pending.text
	}
	switch m.mode {
	case ModeContacts:
		return "Contacts >>> "
	case ModeNotes:
		return "Notes >>> "
	default:
		return "Choose a mode (contacts | notes) or exit: "
	}
}

// ask queues a follow-up question for the next submitted line.
func (m *Model) ask(text string, next func(value string) tea.Cmd) {
	m.pending = &prompt{text: text, submit: next}
}

// askValidated keeps asking until check accepts the answer. A blank
// answer passes through when optional.
func (m *Model) askValidated(text string, optional bool, check func(string) error, next func(value string) tea.Cmd) {
	m.ask(text, func(raw string) tea.Cmd {
		if raw == "" && optional {
			return next("")
		}
		if err := check(raw); err != nil {
			m.println(errStyle.Render(err.Error()))
			m.askValidated(text, optional, check, next)
			return nil
		}
		return next(raw)
	})
}

// collectArgs prompts for the arguments of cmd that were not given
// inline, then hands the full list to done.
func (m *Model) collectArgs(cmd string, given []string, done func(args []string) tea.Cmd) tea.Cmd {
	prompts := argPrompts[cmd]
	if len(given) >= len(prompts) {
		return done(given)
	}
	m.ask(prompts[len(given)], func(raw string) tea.Cmd {
		return m.collectArgs(cmd, append(given, raw), done)
	})
	return nil
}

func (m *Model) syncViewport() {
	if !m.ready || !m.dirty {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
	m.dirty = false
}

// View implements tea.Model
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("satchel - %s", m.mode.String()))
	if m.busy {
		header += warnStyle.Render(" thinking …")
	}

	footer := footerStyle.Render("[esc] back  [pgup/pgdn] scroll  [ctrl+c] save & quit")

	innerWidth := m.width - 6
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s",
		header, divider, m.viewport.View(), divider, m.input.View(), footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the interactive session and prints the goodbye line once
// the terminal is back to normal.
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*Model); ok && m.exitMsg != "" {
		fmt.Println(m.exitMsg)
	}
	return nil
}
