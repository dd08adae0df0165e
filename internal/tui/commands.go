package tui

import "fmt"

// command is one entry of a mode's catalog: the name the dispatcher
// matches on and the usage line shown by help.
type command struct {
	name  string
	usage string
}

var contactCommands = []command{
	{"add", "add <Name> [Surname] [Phone] [Email] [Address]"},
	{"change", "update a contact's phone, email, or address"},
	{"remove-phone", "remove-phone <Name> <Phone>"},
	{"phone", "phone <Name>"},
	{"delete", "delete <Name>"},
	{"all", "show all contacts"},
	{"search", "search <query> over names, phones, and notes"},
	{"change-email", "change-email <Name> <Email>"},
	{"change-address", "change-address <Name> <Address>"},
	{"add-birthday", "add-birthday <Name> <DD.MM.YYYY>"},
	{"show-birthday", "show-birthday <Name|Surname>"},
	{"birthdays", "birthdays <N> shows the next N days"},
	{"add-contact-note", "add-contact-note <Name> <Text>"},
	{"back", "return to the main menu"},
	{"exit", "exit / close saves and quits"},
	{"help", "hello / help shows this help"},
}

var noteCommands = []command{
	{"add-note", "add a new note"},
	{"list-notes", "view all notes"},
	{"add-tag", "add-tag <Number> <Tags>"},
	{"search-tag", "find notes by tag"},
	{"search-note", "find notes by text"},
	{"back", "return to the main menu"},
	{"exit", "exit / close saves and quits"},
	{"help", "hello / help shows this help"},
}

// argPrompts lists what to ask for when a command arrives with fewer
// arguments than it needs. Only the missing ones are prompted.
var argPrompts = map[string][]string{
	"remove-phone":     {"Contact name: ", "Phone: "},
	"phone":            {"Contact name: "},
	"delete":           {"Contact name: "},
	"change-email":     {"Contact name: ", "New email: "},
	"change-address":   {"Contact name: ", "New address: "},
	"add-birthday":     {"Contact name: ", "Birthday DD.MM.YYYY: "},
	"show-birthday":    {"Name or surname: "},
	"add-contact-note": {"Contact name: ", "Note: "},
	"search":           {"Query: "},
	"birthdays":        {"Days from today (N): "},
	"add-tag":          {"Note index: ", "Tags (comma): "},
	"search-tag":       {"Tag: "},
	"search-note":      {"Phrase: "},
}

func catalogFor(mode Mode) []command {
	if mode == ModeNotes {
		return noteCommands
	}
	return contactCommands
}

// isKnown reports whether name is a catalog command, counting the hello
// and close aliases.
func isKnown(cmds []command, name string) bool {
	if name == "hello" || name == "close" {
		return true
	}
	for _, c := range cmds {
		if c.name == name {
			return true
		}
	}
	return false
}

func commandNames(cmds []command) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.name
	}
	return names
}

// printHelp appends the catalog of the mode to the transcript.
func (m *Model) printHelp(mode Mode) {
	m.println("")
	m.println(titleStyle.Render("Available commands"))
	for _, c := range catalogFor(mode) {
		m.println(fmt.Sprintf("  %s %s",
			helpStyle.Render(fmt.Sprintf("%-17s", c.name)),
			subtitleStyle.Render(c.usage)))
	}
}
