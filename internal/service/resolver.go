package service

import (
	"errors"
	"strings"
	"unicode"

	"github.com/olenko/satchel/internal/domain"
)

// ErrBadSelection is returned when a disambiguation answer does not pick
// one of the offered candidates.
var ErrBadSelection = errors.New("invalid selection")

// Prompter is the disambiguation round-trip: given the candidate keys in
// order, it shows them 1-indexed and reports the zero-based index chosen.
// ok is false when the answer was not a valid choice.
type Prompter interface {
	SelectKey(candidates []string) (index int, ok bool)
}

// Resolver maps freeform name input to a unique store key.
type Resolver interface {
	// Resolve returns the single key matching the input. With no match it
	// fails with domain.ErrNotFound; with several matches it defers to the
	// prompter and fails with ErrBadSelection when the answer does not
	// pick one of them.
	Resolve(book *domain.AddressBook, input string) (string, error)
}

type resolver struct {
	prompter Prompter
}

// NewResolver creates a resolver that disambiguates through p.
func NewResolver(p Prompter) Resolver {
	return &resolver{prompter: p}
}

func (r *resolver) Resolve(book *domain.AddressBook, input string) (string, error) {
	cands := Candidates(book, input)
	switch len(cands) {
	case 0:
		return "", domain.ErrNotFound
	case 1:
		return cands[0], nil
	}
	idx, ok := r.prompter.SelectKey(cands)
	if !ok || idx < 0 || idx >= len(cands) {
		return "", ErrBadSelection
	}
	return cands[idx], nil
}

// Candidates returns the store keys matching the input, in insertion
// order. A key matches when every input part appears in it as a
// case-insensitive substring.
func Candidates(book *domain.AddressBook, input string) []string {
	parts := splitNameInput(input)
	if len(parts) == 0 {
		return nil
	}
	var out []string
	for _, key := range book.Keys() {
		if containsAll(key, parts) {
			out = append(out, key)
		}
	}
	return out
}

// splitNameInput splits freeform input into at most two lowercased parts:
// the first whitespace-separated token and the remainder with its inner
// spacing preserved. This mirrors how the add command reads name and
// surname.
func splitNameInput(input string) []string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return nil
	}
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return []string{s}
	}
	rest := strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	return []string{s[:i], rest}
}

func containsAll(key string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(key, p) {
			return false
		}
	}
	return true
}
