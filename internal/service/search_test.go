package service

import (
	"context"
	"testing"

	"github.com/olenko/satchel/internal/domain"
)

type fakeSemantic struct {
	idxs []int
	err  error

	calls int
	query string
}

func (f *fakeSemantic) RelevantNotes(ctx context.Context, query string, notes []*domain.Note) ([]int, error) {
	f.calls++
	f.query = query
	return f.idxs, f.err
}

func TestSearchRecordsWholeSubstring(t *testing.T) {
	book := domain.NewAddressBook()
	smith := &domain.Record{Name: "John", Surname: "Smith", Phones: []string{"1234567890"}, Notes: []string{"Loves blue cars"}}
	doe := &domain.Record{Name: "Jane", Surname: "Doe", Notes: []string{"my blue sedan"}}
	book.Put(smith)
	book.Put(doe)

	// The query is matched as one literal substring, never word by word:
	// "blue car" is inside "loves blue cars" but not "my blue sedan".
	got := SearchRecords(book, "blue car")
	if len(got) != 1 || got[0] != smith {
		t.Fatalf("expected only the smith record, got %d hits", len(got))
	}

	if got := SearchRecords(book, "SMITH"); len(got) != 1 || got[0] != smith {
		t.Fatal("expected a case-insensitive surname hit")
	}
	if got := SearchRecords(book, "4567"); len(got) != 1 || got[0] != smith {
		t.Fatal("expected a phone digit hit")
	}
	if got := SearchRecords(book, "nothing here"); len(got) != 0 {
		t.Fatalf("expected no hits, got %d", len(got))
	}
}

func TestMatchNote(t *testing.T) {
	sedan := &domain.Note{Text: "my blue sedan", Tags: []string{"car"}}
	red := &domain.Note{Text: "red car"}

	// Every token must appear somewhere across text and tags.
	if !MatchNote(sedan, "blue car") {
		t.Fatal("expected 'blue car' to match text+tags")
	}
	if MatchNote(red, "blue car") {
		t.Fatal("'red car' lacks the 'blue' token and must not match")
	}
	if !MatchNote(sedan, "BLUE Car") {
		t.Fatal("matching must be case-insensitive")
	}
	// A query with no word tokens matches everything.
	if !MatchNote(red, "!!!") {
		t.Fatal("token-free query must match vacuously")
	}
}

func TestNoteSearchKeywordFirst(t *testing.T) {
	nb := domain.NewNotebook()
	if _, err := nb.Add("buy groceries", []string{"errands"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := nb.Add("call the plumber", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	sem := &fakeSemantic{idxs: []int{1}}
	s := NewNoteSearch(sem)

	res, err := s.Search(context.Background(), nb, "plumber")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Source != SourceKeyword {
		t.Fatalf("expected keyword source, got %v", res.Source)
	}
	if len(res.Hits) != 1 || res.Hits[0].Index != 2 {
		t.Fatalf("expected hit on note 2, got %+v", res.Hits)
	}
	if sem.calls != 0 {
		t.Fatal("semantic collaborator must not run when keywords hit")
	}
}

func TestNoteSearchSemanticFallback(t *testing.T) {
	nb := domain.NewNotebook()
	nb.Add("water the plants", []string{"home"})
	nb.Add("renew the passport", nil)

	sem := &fakeSemantic{idxs: []int{2, 99}}
	s := NewNoteSearch(sem)

	res, err := s.Search(context.Background(), nb, "travel documents")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if sem.calls != 1 || sem.query != "travel documents" {
		t.Fatalf("semantic collaborator not consulted as expected: %+v", sem)
	}
	if res.Source != SourceSemantic {
		t.Fatalf("expected semantic source, got %v", res.Source)
	}
	// Index 99 is out of range and silently dropped.
	if len(res.Hits) != 1 || res.Hits[0].Index != 2 {
		t.Fatalf("expected only note 2, got %+v", res.Hits)
	}
}

func TestNoteSearchDisabled(t *testing.T) {
	nb := domain.NewNotebook()
	nb.Add("water the plants", nil)

	s := NewNoteSearch(nil)
	res, err := s.Search(context.Background(), nb, "travel documents")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Source != SourceDisabled || len(res.Hits) != 0 {
		t.Fatalf("expected a disabled result, got %+v", res)
	}
}
