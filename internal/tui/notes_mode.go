package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olenko/satchel/internal/service"
)

func (m *Model) execNotes(cmd string, args []string) tea.Cmd {
	switch cmd {
	case "hello", "help":
		m.printHelp(ModeNotes)

	case "back":
		m.mode = ModeMain

	case "exit", "close":
		return m.saveAndQuit()

	case "add-note":
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			m.ask("Text: ", func(t string) tea.Cmd {
				return m.finishAddNote(t)
			})
			return nil
		}
		return m.finishAddNote(text)

	case "list-notes":
		m.printNoteTable()

	case "add-tag":
		index, err := strconv.Atoi(args[0])
		if err != nil {
			m.println(errStyle.Render("Note index must be a number."))
			return nil
		}
		if err := m.app.Notebook.TagNote(index, splitTags(strings.Join(args[1:], " "))); err != nil {
			m.printError(err)
			return nil
		}
		m.printOK("Tags added.")

	case "search-tag":
		tag := args[0]
		found := m.app.Notebook.FindByTag(tag)
		if len(found) == 0 {
			m.println(fmt.Sprintf("No notes with tag '%s'.", tag))
			return nil
		}
		for _, n := range found {
			m.println(noteLine(n))
		}

	case "search-note":
		return m.startNoteSearch(strings.Join(args, " "))
	}
	return nil
}

// finishAddNote stores the note, then offers to tag it right away.
func (m *Model) finishAddNote(text string) tea.Cmd {
	n, err := m.app.Notebook.Add(text, nil)
	if err != nil {
		m.printError(err)
		return nil
	}
	m.ask("Add tags? (y/n): ", func(ans string) tea.Cmd {
		if strings.HasPrefix(strings.ToLower(ans), "y") {
			m.ask("Tags: ", func(raw string) tea.Cmd {
				n.Tags = append(n.Tags, splitTags(raw)...)
				m.printOK("Note saved.")
				return nil
			})
			return nil
		}
		m.printOK("Note saved.")
		return nil
	})
	return nil
}

func (m *Model) printNoteTable() {
	nb := m.app.Notebook
	if nb.Len() == 0 {
		m.println(dimStyle.Render("No notes."))
		return
	}
	m.println(tableHeaderStyle.Render(fmt.Sprintf("%3s  %-12s %-20s %s", "#", "Date", "Tags", "Text")))
	for i, n := range nb.Notes {
		m.println(fmt.Sprintf("%3d  %-12s %-20s %s",
			i+1,
			n.CreatedAt.Format("2006-01-02"),
			truncateStr(tagsOrDash(n.Tags), 20),
			n.Text,
		))
	}
}

// startNoteSearch runs the keyword filter and, when it comes up empty,
// consults the assistant in the background.
func (m *Model) startNoteSearch(query string) tea.Cmd {
	nb := m.app.Notebook
	if nb.Len() == 0 {
		m.println(dimStyle.Render("No notes to search."))
		return nil
	}
	m.busy = true
	search := m.app.NoteSearch
	return func() tea.Msg {
		result, err := search.Search(context.Background(), nb, query)
		return noteSearchMsg{result: result, err: err}
	}
}

func (m *Model) printNoteSearch(msg noteSearchMsg) {
	if msg.err != nil {
		m.printError(msg.err)
		return
	}
	switch msg.result.Source {
	case service.SourceKeyword:
		m.println(okStyle.Render("Keyword match:"))
	case service.SourceSemantic:
		if len(msg.result.Hits) == 0 {
			m.println(dimStyle.Render("No semantic matches."))
			return
		}
		m.println(accentStyle.Render("Semantic match:"))
	case service.SourceDisabled:
		m.println(warnStyle.Render("AI search disabled (no API key)."))
		return
	}
	for _, hit := range msg.result.Hits {
		m.println(fmt.Sprintf("%d. %s", hit.Index, noteLine(hit.Note)))
	}
}
