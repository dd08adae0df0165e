package service

import (
	"time"

	"github.com/olenko/satchel/internal/domain"
)

// Occurrence is one upcoming birthday: the date it is celebrated and the
// age the contact turns on it.
type Occurrence struct {
	Date time.Time
	Age  int
}

// UpcomingBirthdays returns, keyed by store key, the next occurrence of
// every birthday falling within daysAhead days of today. The window is
// inclusive on both ends, so a birthday today is always reported.
//
// February 29 birthdays are celebrated on February 28 in non-leap years.
func UpcomingBirthdays(book *domain.AddressBook, daysAhead int, today time.Time) map[string]Occurrence {
	today = domain.DateOf(today)
	out := make(map[string]Occurrence)
	for _, key := range book.Keys() {
		rec, _ := book.Get(key)
		if rec.Birthday == nil {
			continue
		}
		next := projectOnto(*rec.Birthday, today.Year())
		if next.Before(today) {
			next = projectOnto(*rec.Birthday, today.Year()+1)
		}
		delta := int(next.Sub(today).Hours() / 24)
		if delta >= 0 && delta <= daysAhead {
			out[key] = Occurrence{Date: next, Age: next.Year() - rec.Birthday.Year()}
		}
	}
	return out
}

// projectOnto moves a birthday's month and day to the given year.
// time.Date normalizes February 29 to March 1 in non-leap years; that
// shift is detected and mapped to February 28 instead.
func projectOnto(birthday time.Time, year int) time.Time {
	d := time.Date(year, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if d.Month() != birthday.Month() {
		d = time.Date(year, time.February, 28, 0, 0, 0, 0, time.UTC)
	}
	return d
}
