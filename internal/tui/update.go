package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.handle(msg)
	m.input.Prompt = m.promptFor()
	m.syncViewport()
	return m, cmd
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpWidth := msg.Width - 10
		if vpWidth < 20 {
			vpWidth = 20
		}
		vpHeight := msg.Height - 11
		if vpHeight < 5 {
			vpHeight = 5
		}
		if !m.ready {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}
		m.dirty = true

		m.input.Width = vpWidth - 45
		if m.input.Width < 20 {
			m.input.Width = 20
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			if m.saveFailed {
				m.exitMsg = "Changes were not saved."
				return tea.Quit
			}
			if m.busy {
				return nil
			}
			m.println("")
			m.println("Interrupted. Saving …")
			return m.saveAndQuit()

		case key.Matches(msg, DefaultKeyMap.Back):
			if m.pending != nil {
				m.pending = nil
				m.println(dimStyle.Render("(cancelled)"))
				return nil
			}
			m.mode = ModeMain
			return nil

		case key.Matches(msg, DefaultKeyMap.PageUp), key.Matches(msg, DefaultKeyMap.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd

		case key.Matches(msg, DefaultKeyMap.Submit):
			if m.busy {
				return nil
			}
			value := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			return m.submit(value)
		}

		// Everything else is typing
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd

	case correctionMsg:
		return m.handleCorrection(msg)

	case noteSearchMsg:
		m.busy = false
		m.printNoteSearch(msg)
		return nil

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.saveFailed = true
			m.println(errStyle.Render(fmt.Sprintf("failed to save: %v", msg.err)))
			m.println(warnStyle.Render("Press ctrl+c to quit without saving."))
			return nil
		}
		m.exitMsg = "✓ Data saved. Bye!"
		return tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submit routes one entered line: to the pending follow-up when one is
// queued, otherwise to the dispatcher of the current mode.
func (m *Model) submit(value string) tea.Cmd {
	m.echo(m.promptFor(), value)

	if p := m.pending; p != nil {
		m.pending = nil
		return p.submit(value)
	}

	if m.mode == ModeMain {
		return m.runMainMenu(value)
	}
	return m.runModeLine(value, m.mode)
}

func (m *Model) runMainMenu(raw string) tea.Cmd {
	switch strings.ToLower(raw) {
	case "exit", "close":
		return m.saveAndQuit()
	case "contacts":
		m.mode = ModeContacts
		m.printHelp(ModeContacts)
	case "notes":
		m.mode = ModeNotes
		m.printHelp(ModeNotes)
	default:
		m.println("Unknown mode.")
	}
	return nil
}

// runModeLine parses one command line typed in a sub-mode.
func (m *Model) runModeLine(raw string, mode Mode) tea.Cmd {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	if !isKnown(catalogFor(mode), cmd) {
		return m.suggestCorrection(raw, mode)
	}
	return m.collectArgs(cmd, args, func(args []string) tea.Cmd {
		return m.exec(mode, cmd, args)
	})
}

func (m *Model) exec(mode Mode, cmd string, args []string) tea.Cmd {
	if mode == ModeNotes {
		return m.execNotes(cmd, args)
	}
	return m.execContacts(cmd, args)
}

// suggestCorrection asks the assistant what the user probably meant.
func (m *Model) suggestCorrection(raw string, mode Mode) tea.Cmd {
	if m.app.Assist == nil {
		m.println("Unknown command.")
		return nil
	}
	m.busy = true
	assist := m.app.Assist
	names := commandNames(catalogFor(mode))
	return func() tea.Msg {
		guess, err := assist.SuggestCommand(context.Background(), raw, names)
		return correctionMsg{mode: mode, guess: guess, err: err}
	}
}

func (m *Model) handleCorrection(msg correctionMsg) tea.Cmd {
	m.busy = false
	if msg.err != nil {
		m.app.Log.Debug("command correction failed", zap.Error(msg.err))
		m.println("Unknown command.")
		return nil
	}
	if msg.guess == "" {
		m.println("Unknown command.")
		return nil
	}

	guess, mode := msg.guess, msg.mode
	m.ask(fmt.Sprintf("Did you mean '%s'? (y/n): ", guess), func(ans string) tea.Cmd {
		if !strings.HasPrefix(strings.ToLower(ans), "y") {
			m.println("Unknown command.")
			return nil
		}
		return m.collectArgs(guess, nil, func(args []string) tea.Cmd {
			return m.exec(mode, guess, args)
		})
	})
	return nil
}

// saveAndQuit writes both stores in the background, then quits on
// success.
func (m *Model) saveAndQuit() tea.Cmd {
	m.busy = true
	a := m.app
	return func() tea.Msg {
		return savedMsg{err: a.SaveAll(context.Background())}
	}
}
