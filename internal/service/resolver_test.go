package service

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/olenko/satchel/internal/domain"
)

type fakePrompter struct {
	index int
	ok    bool

	calls     int
	presented []string
}

func (f *fakePrompter) SelectKey(candidates []string) (int, bool) {
	f.calls++
	f.presented = candidates
	return f.index, f.ok
}

func testBook(t *testing.T, names ...[2]string) *domain.AddressBook {
	t.Helper()
	book := domain.NewAddressBook()
	for _, n := range names {
		if _, err := book.Upsert(n[0], n[1], "", "", ""); err != nil {
			t.Fatalf("Upsert(%v) failed: %v", n, err)
		}
	}
	return book
}

func TestResolveUnique(t *testing.T) {
	book := testBook(t, [2]string{"John", "Smith"}, [2]string{"John", "Doe"})
	p := &fakePrompter{}
	r := NewResolver(p)

	key, err := r.Resolve(book, "smith")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if key != "john smith" {
		t.Fatalf("expected 'john smith', got %q", key)
	}
	if p.calls != 0 {
		t.Fatal("prompter must not be consulted for a unique match")
	}
}

func TestResolveNotFound(t *testing.T) {
	book := testBook(t, [2]string{"John", "Smith"})
	r := NewResolver(&fakePrompter{})

	_, err := r.Resolve(book, "paul")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveAmbiguous(t *testing.T) {
	book := testBook(t, [2]string{"John", "Smith"}, [2]string{"John", "Doe"})
	p := &fakePrompter{index: 1, ok: true}
	r := NewResolver(p)

	key, err := r.Resolve(book, "john")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if key != "john doe" {
		t.Fatalf("expected selection to pick 'john doe', got %q", key)
	}
	want := []string{"john smith", "john doe"}
	if diff := cmp.Diff(want, p.presented); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveBadSelection(t *testing.T) {
	book := testBook(t, [2]string{"John", "Smith"}, [2]string{"John", "Doe"})

	r := NewResolver(&fakePrompter{ok: false})
	if _, err := r.Resolve(book, "john"); !errors.Is(err, ErrBadSelection) {
		t.Fatalf("expected ErrBadSelection for no selection, got %v", err)
	}

	r = NewResolver(&fakePrompter{index: 5, ok: true})
	if _, err := r.Resolve(book, "john"); !errors.Is(err, ErrBadSelection) {
		t.Fatalf("expected ErrBadSelection for out-of-range index, got %v", err)
	}
}

func TestResolveTwoPartInput(t *testing.T) {
	book := testBook(t, [2]string{"John", "Smith"}, [2]string{"John", "Doe"})
	r := NewResolver(&fakePrompter{})

	// Both parts must match, so two-part input narrows an ambiguous name.
	key, err := r.Resolve(book, "John  Sm")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if key != "john smith" {
		t.Fatalf("expected 'john smith', got %q", key)
	}
}

func TestCandidates(t *testing.T) {
	book := testBook(t,
		[2]string{"Carol", "Johnson"},
		[2]string{"John", "Smith"},
		[2]string{"Anna", "John"},
	)

	got := Candidates(book, "john")
	want := []string{"carol johnson", "john smith", "anna john"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	if got := Candidates(book, "   "); got != nil {
		t.Fatalf("expected no candidates for blank input, got %v", got)
	}
}
