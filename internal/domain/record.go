package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrBirthdaySet is returned when a birthday is assigned to a record that
// already has one. Birthdays are set once and never overwritten.
var ErrBirthdaySet = errors.New("birthday already set")

// Record is a single contact: identity, an ordered phone list, an optional
// birthday, and freeform notes attached to the contact.
type Record struct {
	Name     string
	Surname  string
	Address  string
	Email    string
	Phones   []string
	Birthday *time.Time
	Notes    []string
}

// NewRecord creates a record with a validated name. The surname is optional
// and stored trimmed.
func NewRecord(name, surname string) (*Record, error) {
	n, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	return &Record{Name: n, Surname: strings.TrimSpace(surname)}, nil
}

// FullName returns "Name Surname", without the trailing space when the
// surname is empty.
func (r *Record) FullName() string {
	return strings.TrimSpace(r.Name + " " + r.Surname)
}

// AddPhone appends a validated phone number. Duplicates are allowed.
func (r *Record) AddPhone(raw string) error {
	p, err := ParsePhone(raw)
	if err != nil {
		return err
	}
	r.Phones = append(r.Phones, p)
	return nil
}

// RemovePhone deletes every stored occurrence of the given number.
// Removing a number that is not stored is not an error.
func (r *Record) RemovePhone(phone string) {
	kept := r.Phones[:0]
	for _, p := range r.Phones {
		if p != phone {
			kept = append(kept, p)
		}
	}
	r.Phones = kept
}

// ReplacePhones validates the given number and makes it the only one stored.
func (r *Record) ReplacePhones(raw string) error {
	p, err := ParsePhone(raw)
	if err != nil {
		return err
	}
	r.Phones = []string{p}
	return nil
}

// SetBirthday parses and assigns the birthday. A record keeps its first
// birthday for life: a second assignment fails with ErrBirthdaySet.
func (r *Record) SetBirthday(raw string) error {
	if r.Birthday != nil {
		return ErrBirthdaySet
	}
	dt, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.Birthday = &dt
	return nil
}

// SetEmail validates and replaces the e-mail address.
func (r *Record) SetEmail(raw string) error {
	e, err := ParseEmail(raw)
	if err != nil {
		return err
	}
	r.Email = e
	return nil
}

// SetAddress replaces the address. Addresses are freeform.
func (r *Record) SetAddress(addr string) {
	r.Address = addr
}

// AddNote appends a freeform note. Blank notes are rejected.
func (r *Record) AddNote(text string) error {
	t := strings.TrimSpace(text)
	if t == "" {
		return &ValidationError{Field: "note", Reason: "cannot be empty"}
	}
	r.Notes = append(r.Notes, t)
	return nil
}
