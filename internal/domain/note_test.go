package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNotebookAdd(t *testing.T) {
	nb := NewNotebook()
	n, err := nb.Add("  buy milk  ", []string{"errands"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if n.Text != "buy milk" {
		t.Fatalf("expected trimmed text, got %q", n.Text)
	}
	if n.CreatedAt.IsZero() || n.CreatedAt.Hour() != 0 {
		t.Fatalf("expected a date-only creation stamp, got %v", n.CreatedAt)
	}
	if nb.Len() != 1 {
		t.Fatalf("expected 1 note, got %d", nb.Len())
	}

	if _, err := nb.Add("   ", nil); err == nil {
		t.Fatal("expected blank note to be rejected")
	}
	var verr *ValidationError
	_, err = nb.Add("", nil)
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestTagNote(t *testing.T) {
	nb := NewNotebook()
	if _, err := nb.Add("first", []string{"a"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := nb.Add("second", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := nb.TagNote(2, []string{"b", "c"}); err != nil {
		t.Fatalf("TagNote failed: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "c"}, nb.Notes[1].Tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}

	for _, idx := range []int{0, -1, 3} {
		if err := nb.TagNote(idx, []string{"x"}); !errors.Is(err, ErrNoSuchNote) {
			t.Fatalf("expected ErrNoSuchNote for index %d, got %v", idx, err)
		}
	}
}

func TestFindByTag(t *testing.T) {
	nb := NewNotebook()
	nb.Add("gym schedule", []string{"health", "work"})
	nb.Add("quarterly report", []string{"work"})
	nb.Add("workout plan", []string{"workout"})

	got := nb.FindByTag("work")
	if len(got) != 2 {
		t.Fatalf("expected 2 notes tagged 'work', got %d", len(got))
	}
	if got[0].Text != "gym schedule" || got[1].Text != "quarterly report" {
		t.Fatalf("unexpected notes: %q, %q", got[0].Text, got[1].Text)
	}

	// Tag match is exact, not substring.
	if got := nb.FindByTag("wor"); len(got) != 0 {
		t.Fatalf("expected no matches for partial tag, got %d", len(got))
	}
}
