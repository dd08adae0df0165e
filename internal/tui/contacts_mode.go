package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olenko/satchel/internal/domain"
	"github.com/olenko/satchel/internal/service"
)

func (m *Model) execContacts(cmd string, args []string) tea.Cmd {
	switch cmd {
	case "hello", "help":
		m.printHelp(ModeContacts)

	case "back":
		m.mode = ModeMain

	case "exit", "close":
		return m.saveAndQuit()

	case "add":
		return m.cmdAdd(args)

	case "change":
		m.startChange()

	case "remove-phone":
		phone := args[len(args)-1]
		return m.resolveContact(strings.Join(args[:len(args)-1], " "), func(key string) tea.Cmd {
			rec, _ := m.app.Book.Get(key)
			rec.RemovePhone(phone)
			m.printOK("Phone removed.")
			return nil
		})

	case "phone":
		return m.resolveContact(strings.Join(args, " "), func(key string) tea.Cmd {
			rec, _ := m.app.Book.Get(key)
			if len(rec.Phones) == 0 {
				m.println("No phones.")
			} else {
				m.println(strings.Join(rec.Phones, ", "))
			}
			return nil
		})

	case "delete":
		return m.resolveContact(strings.Join(args, " "), func(key string) tea.Cmd {
			m.app.Book.Remove(key)
			m.printOK("Contact deleted.")
			return nil
		})

	case "all":
		m.printRecords(m.app.Book.Records())

	case "search":
		m.printRecords(service.SearchRecords(m.app.Book, strings.Join(args, " ")))

	case "change-email":
		email := args[len(args)-1]
		return m.resolveContact(strings.Join(args[:len(args)-1], " "), func(key string) tea.Cmd {
			rec, _ := m.app.Book.Get(key)
			if err := rec.SetEmail(email); err != nil {
				m.printError(err)
				return nil
			}
			m.println(fmt.Sprintf("Email updated for %s", titleCase(key)))
			return nil
		})

	case "change-address":
		return m.resolveContact(args[0], func(key string) tea.Cmd {
			rec, _ := m.app.Book.Get(key)
			rec.SetAddress(strings.Join(args[1:], " "))
			m.println(fmt.Sprintf("Address updated for %s", titleCase(key)))
			return nil
		})

	case "add-birthday":
		date := args[len(args)-1]
		return m.resolveContact(strings.Join(args[:len(args)-1], " "), func(key string) tea.Cmd {
			rec, _ := m.app.Book.Get(key)
			if err := rec.SetBirthday(date); err != nil {
				m.printError(err)
				return nil
			}
			m.printOK("Birthday added.")
			return nil
		})

	case "show-birthday":
		m.cmdShowBirthday(args[0])

	case "birthdays":
		m.cmdBirthdays(args[0])

	case "add-contact-note":
		return m.resolveContact(args[0], func(key string) tea.Cmd {
			rec, _ := m.app.Book.Get(key)
			if err := rec.AddNote(strings.Join(args[1:], " ")); err != nil {
				m.printError(err)
				return nil
			}
			m.printOK("Note added.")
			return nil
		})
	}
	return nil
}

type contactForm struct {
	name, surname, phone, email, address string
}

type formStep struct {
	prompt   string
	optional bool
	check    func(string) error
	assign   func(string)
}

func checkName(v string) error  { _, err := domain.ParseName(v); return err }
func checkPhone(v string) error { _, err := domain.ParsePhone(v); return err }
func checkEmail(v string) error { _, err := domain.ParseEmail(v); return err }

// cmdAdd creates or merges a contact. With inline arguments the fields
// are positional; without any it walks through the form one field at a
// time, re-asking on invalid input.
func (m *Model) cmdAdd(args []string) tea.Cmd {
	if len(args) > 0 {
		var surname, phone, email, address string
		name := args[0]
		if len(args) > 1 {
			surname = args[1]
		}
		if len(args) > 2 {
			phone = args[2]
		}
		if len(args) > 3 {
			email = args[3]
		}
		if len(args) > 4 {
			address = strings.Join(args[4:], " ")
		}
		return m.finishAdd(name, surname, phone, email, address)
	}

	f := &contactForm{}
	steps := []formStep{
		{"Enter name: ", false, checkName, func(v string) { f.name = v }},
		{"Enter surname: ", true, nil, func(v string) { f.surname = v }},
		{"Enter phone (10 digits): ", true, checkPhone, func(v string) { f.phone = v }},
		{"Enter email: ", true, checkEmail, func(v string) { f.email = v }},
		{"Enter address: ", true, nil, func(v string) { f.address = v }},
	}

	var walk func(i int) tea.Cmd
	walk = func(i int) tea.Cmd {
		if i == len(steps) {
			return m.finishAdd(f.name, f.surname, f.phone, f.email, f.address)
		}
		s := steps[i]
		check := s.check
		if check == nil {
			check = func(string) error { return nil }
		}
		m.askValidated(s.prompt, s.optional, check, func(v string) tea.Cmd {
			s.assign(v)
			return walk(i + 1)
		})
		return nil
	}
	return walk(0)
}

func (m *Model) finishAdd(name, surname, phone, email, address string) tea.Cmd {
	created, err := m.app.Book.Upsert(name, surname, phone, email, address)
	if err != nil {
		m.printError(err)
		return nil
	}
	if created {
		m.printOK("Contact added.")
	} else {
		m.printOK("Contact updated.")
	}
	return nil
}

// startChange walks the pick-contact, pick-field, new-value dialog.
func (m *Model) startChange() {
	m.ask("Which contact do you want to change? >>> ", func(nameInput string) tea.Cmd {
		return m.resolveContact(nameInput, func(key string) tea.Cmd {
			rec, _ := m.app.Book.Get(key)
			m.ask("What do you want to change in this contact? (phone / email / address) >>> ", func(field string) tea.Cmd {
				switch strings.ToLower(strings.TrimSpace(field)) {
				case "phone":
					m.ask("Enter new phone >>> ", func(v string) tea.Cmd {
						if err := rec.ReplacePhones(v); err != nil {
							m.printError(err)
							return nil
						}
						m.println(fmt.Sprintf("Phone updated for %s", titleCase(key)))
						return nil
					})
				case "email":
					m.ask("Enter new email >>> ", func(v string) tea.Cmd {
						if err := rec.SetEmail(v); err != nil {
							m.printError(err)
							return nil
						}
						m.println(fmt.Sprintf("Email updated for %s", titleCase(key)))
						return nil
					})
				case "address":
					m.ask("Enter new address >>> ", func(v string) tea.Cmd {
						rec.SetAddress(v)
						m.println(fmt.Sprintf("Address updated for %s", titleCase(key)))
						return nil
					})
				default:
					m.println("Unknown command. Choose from: phone / email / address")
				}
				return nil
			})
			return nil
		})
	})
}

// resolveContact finds the stored contact whose key contains every part
// of the input, asking which one when several match.
func (m *Model) resolveContact(input string, next func(key string) tea.Cmd) tea.Cmd {
	keys := service.Candidates(m.app.Book, input)
	switch len(keys) {
	case 0:
		m.println("Contact not found.")
		return nil
	case 1:
		return next(keys[0])
	}

	m.println(warnStyle.Render("Multiple matches found:"))
	for i, k := range keys {
		m.println(fmt.Sprintf("%d. %s", i+1, titleCase(k)))
	}
	m.ask("Select number >>> ", func(raw string) tea.Cmd {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > len(keys) {
			m.println(errStyle.Render("Invalid selection."))
			return nil
		}
		return next(keys[n-1])
	})
	return nil
}

func (m *Model) printRecords(recs []*domain.Record) {
	if len(recs) == 0 {
		m.println(dimStyle.Render("No contacts."))
		return
	}
	for _, rec := range recs {
		m.println(recordPanel(rec, "", panelStyle))
	}
}

func (m *Model) cmdShowBirthday(term string) {
	matches := m.app.Book.FindExact(term)
	if len(matches) == 0 {
		m.println("Contact not found.")
		return
	}
	for _, rec := range matches {
		bday := "—"
		if rec.Birthday != nil {
			bday = rec.Birthday.Format(domain.BirthdayLayout)
		}
		m.println(fmt.Sprintf("%s: %s", rec.FullName(), bday))
	}
}

func (m *Model) cmdBirthdays(arg string) {
	days := m.app.Config.Birthdays.DefaultWindowDays
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			m.println(errStyle.Render("Enter a non-negative integer."))
			return
		}
		days = n
	}

	upcoming := service.UpcomingBirthdays(m.app.Book, days, time.Now())
	if len(upcoming) == 0 {
		m.println("No birthdays in this period.")
		return
	}

	type row struct {
		key string
		occ service.Occurrence
	}
	rows := make([]row, 0, len(upcoming))
	for key, occ := range upcoming {
		rows = append(rows, row{key, occ})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].occ.Date.Before(rows[j].occ.Date)
	})

	for _, r := range rows {
		rec, ok := m.app.Book.Get(r.key)
		if !ok {
			continue
		}
		extra := fmt.Sprintf("%s %s (turns %d)",
			subtitleStyle.Render("Next:    "),
			r.occ.Date.Format(domain.BirthdayLayout),
			r.occ.Age)
		m.println(recordPanel(rec, extra, birthdayPanelStyle))
	}
}

// recordPanel renders one contact card. extra, when set, becomes a
// final line of the body.
func recordPanel(rec *domain.Record, extra string, style lipgloss.Style) string {
	phones := "—"
	if len(rec.Phones) > 0 {
		phones = strings.Join(rec.Phones, ", ")
	}
	email := rec.Email
	if email == "" {
		email = "—"
	}
	address := rec.Address
	if address == "" {
		address = "—"
	}
	bday := "—"
	if rec.Birthday != nil {
		bday = rec.Birthday.Format(domain.BirthdayLayout)
	}
	notes := "—"
	if len(rec.Notes) > 0 {
		notes = strings.Join(rec.Notes, " | ")
	}

	label := subtitleStyle.Render
	body := fmt.Sprintf("%s %s\n%s %s\n%s %s\n%s %s\n%s %s",
		label("Phones:  "), phones,
		label("Email:   "), email,
		label("Address: "), address,
		label("Birthday:"), bday,
		label("Notes:   "), notes,
	)
	if extra != "" {
		body += "\n" + extra
	}
	return style.Render(titleStyle.Render(strings.ToUpper(rec.FullName())) + "\n" + body)
}
