package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrNoSuchNote is returned when a note index does not resolve.
var ErrNoSuchNote = errors.New("no such note")

// Note is one general notebook entry. Notes are addressed by their
// one-based position in the notebook and are never deleted.
type Note struct {
	Text      string
	Tags      []string
	CreatedAt time.Time
}

// Notebook holds general notes in creation order.
type Notebook struct {
	Notes []*Note
}

// NewNotebook returns an empty notebook.
func NewNotebook() *Notebook {
	return &Notebook{}
}

// Add appends a note with the given tags, stamped with today's date.
// Blank text is rejected.
func (nb *Notebook) Add(text string, tags []string) (*Note, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, &ValidationError{Field: "note", Reason: "cannot be empty"}
	}
	n := &Note{Text: t, Tags: tags, CreatedAt: DateOf(time.Now())}
	nb.Notes = append(nb.Notes, n)
	return n, nil
}

// Len reports the number of notes.
func (nb *Notebook) Len() int {
	return len(nb.Notes)
}

// Note returns the note at the one-based index.
func (nb *Notebook) Note(index int) (*Note, error) {
	if index < 1 || index > len(nb.Notes) {
		return nil, ErrNoSuchNote
	}
	return nb.Notes[index-1], nil
}

// TagNote appends tags to the note at the one-based index.
func (nb *Notebook) TagNote(index int, tags []string) error {
	n, err := nb.Note(index)
	if err != nil {
		return err
	}
	n.Tags = append(n.Tags, tags...)
	return nil
}

// FindByTag returns the notes carrying the exact tag, in notebook order.
func (nb *Notebook) FindByTag(tag string) []*Note {
	var out []*Note
	for _, n := range nb.Notes {
		for _, t := range n.Tags {
			if t == tag {
				out = append(out, n)
				break
			}
		}
	}
	return out
}
