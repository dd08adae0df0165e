package tui

import "github.com/olenko/satchel/internal/service"

// correctionMsg carries the AI's guess for a mistyped command.
type correctionMsg struct {
	mode  Mode
	guess string
	err   error
}

// noteSearchMsg carries the outcome of a note search.
type noteSearchMsg struct {
	result service.NoteSearchResult
	err    error
}

// savedMsg reports the save that precedes quitting.
type savedMsg struct {
	err error
}
