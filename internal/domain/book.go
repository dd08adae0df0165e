package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a name does not resolve to any stored record.
var ErrNotFound = errors.New("contact not found")

// Key returns the store key for a name/surname pair: "name surname",
// trimmed and lowercased. Records are unique per key, so two contacts that
// differ only in letter case are the same contact.
func Key(name, surname string) string {
	return strings.ToLower(strings.TrimSpace(name + " " + surname))
}

// AddressBook is the contact store. Records are kept in insertion order so
// listings and searches are stable across a session.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Len reports the number of stored records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// Keys returns the store keys in insertion order.
func (b *AddressBook) Keys() []string {
	keys := make([]string, len(b.order))
	copy(keys, b.order)
	return keys
}

// Records returns the stored records in insertion order.
func (b *AddressBook) Records() []*Record {
	recs := make([]*Record, 0, len(b.order))
	for _, k := range b.order {
		recs = append(recs, b.records[k])
	}
	return recs
}

// Get returns the record stored under key.
func (b *AddressBook) Get(key string) (*Record, bool) {
	rec, ok := b.records[key]
	return rec, ok
}

// Put stores a record under its computed key, replacing any previous record
// with the same key. Used when rebuilding a book from storage.
func (b *AddressBook) Put(rec *Record) {
	key := Key(rec.Name, rec.Surname)
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = rec
}

// Remove deletes the record stored under key and reports whether it existed.
func (b *AddressBook) Remove(key string) bool {
	if _, ok := b.records[key]; !ok {
		return false
	}
	delete(b.records, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Upsert merges the supplied fields into the record stored under the
// name/surname key, creating the record when absent. Optional fields are
// applied only when non-empty: a phone is appended to the list, the other
// fields replace their previous values. Every supplied field is validated
// before the store is touched, so a bad value changes nothing. The reported
// flag is true when a new record was created.
func (b *AddressBook) Upsert(name, surname, phone, email, address string) (bool, error) {
	n, err := ParseName(name)
	if err != nil {
		return false, err
	}
	sur := strings.TrimSpace(surname)
	var p, e string
	if phone != "" {
		if p, err = ParsePhone(phone); err != nil {
			return false, err
		}
	}
	if email != "" {
		if e, err = ParseEmail(email); err != nil {
			return false, err
		}
	}

	key := Key(n, sur)
	if rec, ok := b.records[key]; ok {
		if p != "" {
			rec.Phones = append(rec.Phones, p)
		}
		if sur != "" {
			rec.Surname = sur
		}
		if e != "" {
			rec.Email = e
		}
		if address != "" {
			rec.Address = address
		}
		return false, nil
	}

	rec := &Record{Name: n, Surname: sur, Address: address, Email: e}
	if p != "" {
		rec.Phones = []string{p}
	}
	b.records[key] = rec
	b.order = append(b.order, key)
	return true, nil
}

// FindExact returns the records whose name or surname equals term,
// case-insensitively, in insertion order.
func (b *AddressBook) FindExact(term string) []*Record {
	t := strings.ToLower(term)
	var out []*Record
	for _, rec := range b.Records() {
		if strings.ToLower(rec.Name) == t || strings.ToLower(rec.Surname) == t {
			out = append(out, rec)
		}
	}
	return out
}
