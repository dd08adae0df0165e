package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseName(t *testing.T) {
	got, err := ParseName("  John ")
	if err != nil {
		t.Fatalf("ParseName failed: %v", err)
	}
	if got != "John" {
		t.Fatalf("expected trimmed name 'John', got %q", got)
	}

	if _, err := ParseName("   "); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestParsePhone(t *testing.T) {
	valid := []string{"0123456789", "9999999999"}
	for _, v := range valid {
		if _, err := ParsePhone(v); err != nil {
			t.Fatalf("expected %q to be valid: %v", v, err)
		}
	}

	invalid := []string{"", "123456789", "12345678901", "12345abcde", "123 456 78"}
	for _, v := range invalid {
		if _, err := ParsePhone(v); err == nil {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}

func TestParsePhoneErrorType(t *testing.T) {
	_, err := ParsePhone("123")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Field != "phone" {
		t.Fatalf("expected field 'phone', got %q", verr.Field)
	}
}

func TestParseEmail(t *testing.T) {
	got, err := ParseEmail("john@example.com")
	if err != nil {
		t.Fatalf("ParseEmail failed: %v", err)
	}
	if got != "john@example.com" {
		t.Fatalf("unexpected email %q", got)
	}

	// Empty means unset and is accepted.
	if _, err := ParseEmail(""); err != nil {
		t.Fatalf("expected empty email to be accepted: %v", err)
	}

	invalid := []string{"no-at-sign.com", "two@@signs@x.com", "missing@tld", "@example.com"}
	for _, v := range invalid {
		if _, err := ParseEmail(v); err == nil {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}

func TestParseBirthday(t *testing.T) {
	bd, err := ParseBirthday("15.03.1990")
	if err != nil {
		t.Fatalf("ParseBirthday failed: %v", err)
	}
	if bd.Day() != 15 || bd.Month() != time.March || bd.Year() != 1990 {
		t.Fatalf("unexpected date %v", bd)
	}

	// Today is a valid birthday, tomorrow is not.
	if _, err := ParseBirthday(time.Now().Format(BirthdayLayout)); err != nil {
		t.Fatalf("expected today to be accepted: %v", err)
	}
	tomorrow := time.Now().AddDate(0, 0, 1).Format(BirthdayLayout)
	if _, err := ParseBirthday(tomorrow); err == nil {
		t.Fatal("expected future birthday to be rejected")
	}

	invalid := []string{"1990-03-15", "15/03/1990", "1.1.1990", "32.01.1990", "31.02.2000", "notadate"}
	for _, v := range invalid {
		if _, err := ParseBirthday(v); err == nil {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	d := DateOf(time.Date(2024, 7, 9, 23, 45, 0, 0, loc))
	want := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Fatalf("expected %v, got %v", want, d)
	}
}
