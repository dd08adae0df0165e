package service

import (
	"testing"
	"time"

	"github.com/olenko/satchel/internal/domain"
)

func bookWithBirthdays(t *testing.T, entries map[string]string) *domain.AddressBook {
	t.Helper()
	book := domain.NewAddressBook()
	// Insert in a fixed order so keys are predictable.
	for _, name := range []string{"Ann", "Ben", "Cleo", "Dan"} {
		bd, ok := entries[name]
		if !ok {
			continue
		}
		rec, err := domain.NewRecord(name, "")
		if err != nil {
			t.Fatalf("NewRecord(%s) failed: %v", name, err)
		}
		if bd != "" {
			dt, err := time.Parse(domain.BirthdayLayout, bd)
			if err != nil {
				t.Fatalf("bad birthday %q: %v", bd, err)
			}
			rec.Birthday = &dt
		}
		book.Put(rec)
	}
	return book
}

func TestUpcomingBirthdaysWindow(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{
		"Ann":  "15.03.1990", // in 5 days
		"Ben":  "10.03.1985", // today
		"Cleo": "25.03.2000", // in 15 days, outside the window
		"Dan":  "",           // no birthday
	})
	today := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

	got := UpcomingBirthdays(book, 7, today)
	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences, got %d: %v", len(got), got)
	}

	ann, ok := got["ann"]
	if !ok {
		t.Fatal("expected ann in the window")
	}
	if !ann.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) || ann.Age != 34 {
		t.Fatalf("unexpected occurrence for ann: %+v", ann)
	}

	ben, ok := got["ben"]
	if !ok {
		t.Fatal("expected ben in the window: a birthday today counts")
	}
	if ben.Age != 39 {
		t.Fatalf("expected ben to turn 39, got %d", ben.Age)
	}

	if _, ok := got["cleo"]; ok {
		t.Fatal("cleo is outside the window")
	}
}

func TestUpcomingBirthdaysBoundary(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{
		"Ann": "08.06.1990", // exactly daysAhead away
		"Ben": "09.06.1990", // one day beyond
	})
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got := UpcomingBirthdays(book, 7, today)
	if _, ok := got["ann"]; !ok {
		t.Fatal("a birthday exactly daysAhead away must be included")
	}
	if _, ok := got["ben"]; ok {
		t.Fatal("a birthday one day beyond the window must be excluded")
	}
}

func TestUpcomingBirthdaysYearRollover(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{
		"Ann": "02.01.1990",
	})
	today := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)

	got := UpcomingBirthdays(book, 7, today)
	occ, ok := got["ann"]
	if !ok {
		t.Fatal("expected the January birthday to roll into next year")
	}
	if !occ.Date.Equal(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 02.01.2025, got %v", occ.Date)
	}
	if occ.Age != 35 {
		t.Fatalf("expected age 35, got %d", occ.Age)
	}
}

func TestUpcomingBirthdaysFeb29(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{
		"Ann": "29.02.2000",
	})

	// Non-leap year: celebrated on February 28.
	today := time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC)
	got := UpcomingBirthdays(book, 10, today)
	occ, ok := got["ann"]
	if !ok {
		t.Fatal("expected the leap-day birthday in the window")
	}
	if !occ.Date.Equal(time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 28.02.2023, got %v", occ.Date)
	}
	if occ.Age != 23 {
		t.Fatalf("expected age 23, got %d", occ.Age)
	}

	// Already past in a non-leap year: next year is a leap year, so the
	// real date comes back.
	today = time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	got = UpcomingBirthdays(book, 365, today)
	occ, ok = got["ann"]
	if !ok {
		t.Fatal("expected the rolled-over leap-day birthday")
	}
	if !occ.Date.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 29.02.2024, got %v", occ.Date)
	}
	if occ.Age != 24 {
		t.Fatalf("expected age 24, got %d", occ.Age)
	}
}

func TestUpcomingBirthdaysZeroWindow(t *testing.T) {
	book := bookWithBirthdays(t, map[string]string{
		"Ann": "10.03.1990",
		"Ben": "11.03.1990",
	})
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	got := UpcomingBirthdays(book, 0, today)
	if len(got) != 1 {
		t.Fatalf("expected only today's birthday, got %v", got)
	}
	if _, ok := got["ann"]; !ok {
		t.Fatal("expected ann with a birthday today")
	}
}
