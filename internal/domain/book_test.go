package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKey(t *testing.T) {
	if got := Key("John", "Smith"); got != "john smith" {
		t.Fatalf("expected 'john smith', got %q", got)
	}
	if got := Key("Alice", ""); got != "alice" {
		t.Fatalf("expected 'alice', got %q", got)
	}
}

func TestUpsertCreatesThenMerges(t *testing.T) {
	book := NewAddressBook()

	created, err := book.Upsert("John", "Smith", "1234567890", "", "")
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !created {
		t.Fatal("expected first upsert to create the record")
	}

	created, err = book.Upsert("john", "smith", "0987654321", "john@example.com", "12 Main St")
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if created {
		t.Fatal("expected second upsert to merge, not create")
	}
	if book.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", book.Len())
	}

	rec, ok := book.Get("john smith")
	if !ok {
		t.Fatal("record not found under its key")
	}
	wantPhones := []string{"1234567890", "0987654321"}
	if diff := cmp.Diff(wantPhones, rec.Phones); diff != "" {
		t.Fatalf("phones mismatch (-want +got):\n%s", diff)
	}
	if rec.Email != "john@example.com" {
		t.Fatalf("expected merged email, got %q", rec.Email)
	}
	if rec.Address != "12 Main St" {
		t.Fatalf("expected merged address, got %q", rec.Address)
	}
}

func TestUpsertValidatesBeforeTouchingStore(t *testing.T) {
	book := NewAddressBook()
	if _, err := book.Upsert("John", "Smith", "1234567890", "", ""); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// A bad phone on an existing record must leave it untouched.
	if _, err := book.Upsert("John", "Smith", "123", "new@example.com", "Elm St"); err == nil {
		t.Fatal("expected bad phone to be rejected")
	}
	rec, _ := book.Get("john smith")
	if len(rec.Phones) != 1 || rec.Email != "" || rec.Address != "" {
		t.Fatalf("record was modified despite the validation error: %+v", rec)
	}

	// A bad email on a new name must not create a record.
	if _, err := book.Upsert("Jane", "Doe", "", "not-an-email", ""); err == nil {
		t.Fatal("expected bad email to be rejected")
	}
	if book.Len() != 1 {
		t.Fatalf("expected 1 record after rejected create, got %d", book.Len())
	}
}

func TestInsertionOrderSurvivesRemoval(t *testing.T) {
	book := NewAddressBook()
	for _, name := range []string{"Carol", "Alice", "Bob"} {
		if _, err := book.Upsert(name, "", "", "", ""); err != nil {
			t.Fatalf("Upsert(%s) failed: %v", name, err)
		}
	}
	want := []string{"carol", "alice", "bob"}
	if diff := cmp.Diff(want, book.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	if !book.Remove("alice") {
		t.Fatal("Remove reported alice missing")
	}
	if _, err := book.Upsert("Alice", "", "", "", ""); err != nil {
		t.Fatalf("re-add failed: %v", err)
	}
	want = []string{"carol", "bob", "alice"}
	if diff := cmp.Diff(want, book.Keys()); diff != "" {
		t.Fatalf("keys after re-add mismatch (-want +got):\n%s", diff)
	}

	if book.Remove("nobody") {
		t.Fatal("Remove reported success for a missing key")
	}
}

func TestFindExact(t *testing.T) {
	book := NewAddressBook()
	book.Put(&Record{Name: "John", Surname: "Smith"})
	book.Put(&Record{Name: "Anna", Surname: "John"})
	book.Put(&Record{Name: "Johnny", Surname: "Cash"})

	got := book.FindExact("JOHN")
	if len(got) != 2 {
		t.Fatalf("expected 2 exact matches, got %d", len(got))
	}
	if got[0].FullName() != "John Smith" || got[1].FullName() != "Anna John" {
		t.Fatalf("unexpected matches: %s, %s", got[0].FullName(), got[1].FullName())
	}

	if got := book.FindExact("Johnn"); len(got) != 0 {
		t.Fatalf("expected no partial matches, got %d", len(got))
	}
}

func TestRecordBirthdaySetOnce(t *testing.T) {
	rec, err := NewRecord("John", "Smith")
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	if err := rec.SetBirthday("15.03.1990"); err != nil {
		t.Fatalf("SetBirthday failed: %v", err)
	}
	err = rec.SetBirthday("16.03.1990")
	if !errors.Is(err, ErrBirthdaySet) {
		t.Fatalf("expected ErrBirthdaySet, got %v", err)
	}
	if rec.Birthday.Day() != 15 {
		t.Fatal("original birthday was overwritten")
	}
}

func TestRemovePhoneDropsAllOccurrences(t *testing.T) {
	rec := &Record{Name: "John", Phones: []string{"1234567890", "0987654321", "1234567890"}}
	rec.RemovePhone("1234567890")
	if diff := cmp.Diff([]string{"0987654321"}, rec.Phones); diff != "" {
		t.Fatalf("phones mismatch (-want +got):\n%s", diff)
	}
	// Removing an absent number is a no-op.
	rec.RemovePhone("1111111111")
	if len(rec.Phones) != 1 {
		t.Fatalf("expected 1 phone, got %d", len(rec.Phones))
	}
}
