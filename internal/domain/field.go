package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ValidationError reports a field value that failed its format check.
// Every validated field is checked at assignment time, so a value that
// made it into a record is always well-formed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BirthdayLayout is the accepted input format for birthdays: two-digit day,
// two-digit month, four-digit year.
const BirthdayLayout = "02.01.2006"

// emailRE accepts local@domain.tld where neither part contains another @.
var emailRE = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ParseName validates and normalizes a contact name: trimmed, non-empty.
func ParseName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	return name, nil
}

// ParsePhone validates a phone number: exactly ten decimal digits.
func ParsePhone(s string) (string, error) {
	if len(s) != 10 || !allDigits(s) {
		return "", &ValidationError{Field: "phone", Reason: "must contain exactly 10 digits"}
	}
	return s, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ParseEmail validates an e-mail address. The empty string is valid and
// means "unset"; anything else must look like name@example.com.
func ParseEmail(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v != "" && !emailRE.MatchString(v) {
		return "", &ValidationError{Field: "email", Reason: "must look like name@example.com"}
	}
	return v, nil
}

// ParseBirthday parses a DD.MM.YYYY date and rejects dates after today.
// The returned time is the calendar date at UTC midnight.
func ParseBirthday(s string) (time.Time, error) {
	dt, err := time.Parse(BirthdayLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "birthday", Reason: "date must be DD.MM.YYYY"}
	}
	if dt.After(DateOf(time.Now())) {
		return time.Time{}, &ValidationError{Field: "birthday", Reason: "cannot be in the future"}
	}
	return dt, nil
}

// DateOf truncates a time to its calendar date at UTC midnight. All date
// arithmetic in the birthday engine works on values produced by this.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
